package patterns

import (
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"

	"github.com/kublaj/drizzle-builder/pkg/errors"
	"github.com/kublaj/drizzle-builder/pkg/logging"
	"github.com/kublaj/drizzle-builder/pkg/parsers"
	"github.com/kublaj/drizzle-builder/pkg/paths"
	"github.com/kublaj/drizzle-builder/pkg/reader"
)

// CollectionKey is the record key that merges onto a directory's
// collection instead of creating a pattern
const CollectionKey = "collection"

// Reserved property names assigned by the builder
const (
	ReservedID       = "id"
	ReservedItems    = "items"
	ReservedPatterns = "patterns"
)

// patternMeta is the typed slice of a pattern's front matter
type patternMeta struct {
	Name   string `mapstructure:"name"`
	Hidden bool   `mapstructure:"hidden"`
}

// collectionMeta is the typed slice of collection front matter
type collectionMeta struct {
	Name  string   `mapstructure:"name"`
	Order []string `mapstructure:"order"`
}

// BuilderOptions configures a Builder
type BuilderOptions struct {
	// Basedir anchors directory segments; its last path element is the
	// segment IDs are rooted under (e.g. "src/patterns" -> "patterns")
	Basedir string

	// RootKey is the fallback root segment for records whose path does
	// not sit under Basedir
	RootKey string

	// Key derives a record's key from its path. Defaults to paths.Keyname.
	Key func(path string) string
}

// Builder folds file records into a pattern tree. The builder owns the
// tree exclusively while Build runs; ownership passes to the caller with
// the returned tree.
type Builder struct {
	basedir string
	rootKey string
	key     func(path string) string
	logger  zerolog.Logger
}

// NewBuilder creates a Builder
func NewBuilder(opts BuilderOptions) *Builder {
	b := &Builder{
		basedir: opts.Basedir,
		rootKey: opts.RootKey,
		key:     opts.Key,
		logger:  logging.GetLogger("patterns.builder"),
	}
	if b.rootKey == "" {
		b.rootKey = "patterns"
	}
	if b.key == nil {
		b.key = paths.Keyname
	}
	return b
}

// Build constructs the pattern tree from a snapshot of file records.
// Records are processed in path order, so the result is identical for a
// fixed record set regardless of read order. The first reserved-property
// violation aborts the whole build.
func (b *Builder) Build(records []reader.Record) (*Tree, error) {
	b.logger.Debug().Int("recordCount", len(records)).Msg("Building pattern tree")

	sorted := make([]reader.Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	tree := NewTree()
	for _, rec := range sorted {
		if err := b.place(tree, rec); err != nil {
			return nil, err
		}
	}

	if err := tree.WalkCollections(func(_ *Namespace, c *Collection) error {
		c.Patterns = orderedView(c)
		return nil
	}); err != nil {
		return nil, err
	}

	b.logger.Info().Int("recordCount", len(records)).Msg("Pattern tree built")
	return tree, nil
}

// place walks the tree to the record's directory, creating namespaces and
// the collection stub on the way, and adds the record as a pattern or as
// collection front matter.
func (b *Builder) place(tree *Tree, rec reader.Record) error {
	segs := paths.RelativePathArray(rec.Path, b.basedir)
	if len(segs) == 0 {
		segs = []string{b.rootKey}
	}

	ns := tree.Root
	for _, seg := range segs {
		ns = ns.child(seg)
	}

	if ns.Collection == nil {
		ns.Collection = &Collection{
			ID:    strings.Join(segs, "."),
			Name:  paths.TitleCase(segs[len(segs)-1]),
			Items: make(map[string]*Pattern),
			Data:  make(map[string]interface{}),
		}
	}

	key := b.key(rec.Path)
	if key == CollectionKey {
		return b.mergeCollection(ns.Collection, rec)
	}
	return b.addPattern(ns.Collection, segs, key, rec)
}

func (b *Builder) addPattern(c *Collection, segs []string, key string, rec reader.Record) error {
	if _, found := rec.Data[ReservedID]; found {
		return errors.Newf(errors.ErrReservedProperty,
			"reserved property %q set in pattern file %s", ReservedID, rec.Path).
			WithDetail("property", ReservedID).
			WithDetail("file", rec.Path)
	}

	var meta patternMeta
	if err := mapstructure.Decode(rec.Data, &meta); err != nil {
		return errors.Wrapf(err, errors.ErrParse,
			"invalid pattern metadata in %s", rec.Path).
			WithDetail("file", rec.Path)
	}

	name := meta.Name
	if name == "" {
		name = paths.TitleCase(key)
	}

	data := make(map[string]interface{}, len(rec.Data))
	for k, v := range rec.Data {
		if k == parsers.ContentsKey {
			continue
		}
		data[k] = v
	}

	contents, _ := rec.Data[parsers.ContentsKey].(string)
	c.Items[key] = &Pattern{
		ID:       strings.Join(append(append([]string{}, segs...), key), "."),
		Name:     name,
		Path:     rec.Path,
		Hidden:   meta.Hidden,
		Data:     data,
		Contents: contents,
	}

	b.logger.Trace().
		Str("id", c.Items[key].ID).
		Str("file", rec.Path).
		Msg("Pattern placed")
	return nil
}

func (b *Builder) mergeCollection(c *Collection, rec reader.Record) error {
	for _, reserved := range []string{ReservedItems, ReservedPatterns} {
		if _, found := rec.Data[reserved]; found {
			return errors.Newf(errors.ErrReservedProperty,
				"reserved property %q set for collection %q in %s", reserved, c.ID, rec.Path).
				WithDetail("property", reserved).
				WithDetail("file", rec.Path).
				WithDetail("collection", c.ID)
		}
	}

	var meta collectionMeta
	if err := mapstructure.Decode(rec.Data, &meta); err != nil {
		return errors.Wrapf(err, errors.ErrParse,
			"invalid collection metadata in %s", rec.Path).
			WithDetail("file", rec.Path)
	}

	if meta.Name != "" {
		c.Name = meta.Name
	}
	if len(meta.Order) > 0 {
		c.Order = meta.Order
	}
	for k, v := range rec.Data {
		if k == parsers.ContentsKey {
			continue
		}
		c.Data[k] = v
	}
	return nil
}

// orderedView derives the Patterns slice from Items: declared order first,
// remaining keys in natural order, hidden patterns excluded.
func orderedView(c *Collection) []*Pattern {
	listed := make(map[string]bool, len(c.Order))
	keys := make([]string, 0, len(c.Items))
	for _, k := range c.Order {
		if _, ok := c.Items[k]; ok && !listed[k] {
			listed[k] = true
			keys = append(keys, k)
		}
	}
	rest := make([]string, 0, len(c.Items))
	for k := range c.Items {
		if !listed[k] {
			rest = append(rest, k)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return paths.NaturalLess(rest[i], rest[j]) })
	keys = append(keys, rest...)

	view := make([]*Pattern, 0, len(keys))
	for _, k := range keys {
		if p := c.Items[k]; !p.Hidden {
			view = append(view, p)
		}
	}
	return view
}

// sortedKeys returns map keys in natural order
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return paths.NaturalLess(keys[i], keys[j]) })
	return keys
}
