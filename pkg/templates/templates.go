// Package templates loads layout templates into a dot-path addressable tree.
//
// Layouts are read raw (no front matter) and keyed the same way patterns
// are: Keyname of the file, nested under the directory segments below the
// layouts basedir. A layout at layouts/collection.html is addressed as
// "collection"; layouts/partials/nav.html as "partials.nav".
package templates

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/kublaj/drizzle-builder/pkg/logging"
	"github.com/kublaj/drizzle-builder/pkg/parsers"
	"github.com/kublaj/drizzle-builder/pkg/paths"
	"github.com/kublaj/drizzle-builder/pkg/reader"
)

// Tree is a nested mapping from template keys to layout bodies
type Tree struct {
	root map[string]interface{}
}

// NewTree returns an empty template tree
func NewTree() *Tree {
	return &Tree{root: make(map[string]interface{})}
}

// Loader reads layout files into a Tree
type Loader struct {
	reader  *reader.Reader
	basedir string
	logger  zerolog.Logger
}

// NewLoader creates a Loader. The reader's parser set is ignored; layouts
// are always read raw.
func NewLoader(opts reader.Options, basedir string) (*Loader, error) {
	set, err := parsers.NewSet([]parsers.Rule{
		{Name: parsers.DefaultRuleName, Parse: parsers.Identity},
	})
	if err != nil {
		return nil, err
	}
	opts.Parsers = set
	return &Loader{
		reader:  reader.New(opts),
		basedir: basedir,
		logger:  logging.GetLogger("templates"),
	}, nil
}

// Load reads every layout matched by the globs into a Tree
func (l *Loader) Load(globs ...string) (*Tree, error) {
	records, err := l.reader.ReadFiles(globs...)
	if err != nil {
		return nil, err
	}

	tree := NewTree()
	for _, rec := range records {
		segs := paths.RelativePathArray(rec.Path, l.basedir)
		if len(segs) > 0 {
			// drop the basedir anchor; lookup paths are relative to it
			segs = segs[1:]
		}
		body, _ := rec.Data[parsers.ContentsKey].(string)
		tree.set(append(segs, paths.Keyname(rec.Path)), body)
	}

	l.logger.Debug().
		Int("templateCount", len(records)).
		Strs("globs", globs).
		Msg("Template tree loaded")
	return tree, nil
}

// set places a body at the given key path, creating nested maps as needed.
// A body and a subtree fighting over one key resolves to the later write.
func (t *Tree) set(keys []string, body string) {
	node := t.root
	for _, k := range keys[:len(keys)-1] {
		next, ok := node[k].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			node[k] = next
		}
		node = next
	}
	node[keys[len(keys)-1]] = body
}

// Lookup resolves a dot-path to a layout body
func (t *Tree) Lookup(dotPath string) (string, bool) {
	node := t.root
	keys := strings.Split(dotPath, ".")
	for i, k := range keys {
		v, ok := node[k]
		if !ok {
			return "", false
		}
		if i == len(keys)-1 {
			body, ok := v.(string)
			return body, ok
		}
		node, ok = v.(map[string]interface{})
		if !ok {
			return "", false
		}
	}
	return "", false
}
