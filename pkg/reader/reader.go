// Package reader resolves globs and reads content files into keyed records.
//
// Reads within a batch are issued concurrently, so record order in a batch
// carries no meaning. Later stages derive identity and ordering from each
// record's own path, never from batch order.
package reader

import (
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kublaj/drizzle-builder/pkg/errors"
	"github.com/kublaj/drizzle-builder/pkg/logging"
	"github.com/kublaj/drizzle-builder/pkg/parsers"
	"github.com/kublaj/drizzle-builder/pkg/paths"
)

// DefaultConcurrency bounds parallel file reads in a batch
const DefaultConcurrency = 8

// Record is one parsed source file
type Record struct {
	// Path is the file path as resolved by the glob
	Path string

	// Data holds the parsed file data, body content under "contents"
	Data map[string]interface{}
}

// Options configures a Reader
type Options struct {
	// FS is the filesystem globs are resolved against. Defaults to the
	// process working directory.
	FS fs.FS

	// Parsers dispatches file paths to parse functions.
	// Defaults to parsers.DefaultSet().
	Parsers *parsers.Set

	// Concurrency bounds parallel reads. Defaults to DefaultConcurrency.
	Concurrency int

	// Key derives a record key from a file path for ReadKeyed.
	// Defaults to paths.Keyname.
	Key func(path string) string
}

// Reader reads batches of content files
type Reader struct {
	fsys        fs.FS
	parsers     *parsers.Set
	concurrency int
	key         func(path string) string
	logger      zerolog.Logger
}

// New creates a Reader from options, applying defaults for zero fields
func New(opts Options) *Reader {
	r := &Reader{
		fsys:        opts.FS,
		parsers:     opts.Parsers,
		concurrency: opts.Concurrency,
		key:         opts.Key,
		logger:      logging.GetLogger("reader"),
	}
	if r.fsys == nil {
		r.fsys = os.DirFS(".")
	}
	if r.parsers == nil {
		r.parsers = parsers.DefaultSet()
	}
	if r.concurrency <= 0 {
		r.concurrency = DefaultConcurrency
	}
	if r.key == nil {
		r.key = paths.Keyname
	}
	return r
}

// Files resolves one or more globs to matching file paths
func (r *Reader) Files(globs ...string) ([]string, error) {
	var matches []string
	for _, g := range globs {
		found, err := doublestar.Glob(r.fsys, g, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrGlob, "cannot resolve glob %q", g)
		}
		matches = append(matches, found...)
	}
	sort.Strings(matches)
	return matches, nil
}

// Dirs resolves one or more globs to directory paths by rewriting each
// glob to its parent-directory wildcard form: the filename segment is
// dropped, so "src/patterns/*/*.html" resolves the "src/patterns/*" dirs.
func (r *Reader) Dirs(globs ...string) ([]string, error) {
	var matches []string
	seen := make(map[string]bool)
	for _, g := range globs {
		rewritten := path.Dir(g)
		if rewritten == "." {
			rewritten = "*"
		}
		found, err := doublestar.Glob(r.fsys, rewritten)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrGlob, "cannot resolve glob %q", rewritten)
		}
		for _, p := range found {
			info, err := fs.Stat(r.fsys, p)
			if err != nil || !info.IsDir() || seen[p] {
				continue
			}
			seen[p] = true
			matches = append(matches, p)
		}
	}
	sort.Strings(matches)
	return matches, nil
}

// ReadFiles resolves globs, reads every matched file and runs the matched
// parser over it. Reads run concurrently; the whole batch completes (or the
// first error aborts it) before ReadFiles returns.
func (r *Reader) ReadFiles(globs ...string) ([]Record, error) {
	files, err := r.Files(globs...)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Int("fileCount", len(files)).
		Strs("globs", globs).
		Msg("Reading files")

	records := make([]Record, len(files))
	var g errgroup.Group
	g.SetLimit(r.concurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			text, err := fs.ReadFile(r.fsys, file)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileRead, "cannot read %s", file).
					WithDetail("file", file)
			}
			data, err := r.parsers.Match(file)(text, file)
			if err != nil {
				return errors.Wrapf(err, errors.ErrParse, "cannot parse %s", file).
					WithDetail("file", file)
			}
			records[i] = Record{Path: file, Data: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// ReadKeyed reads files like ReadFiles and indexes the records by key.
// When two files derive the same key the one later in resolution order
// wins; resolution order is platform-dependent, so colliding keys are an
// authoring hazard, not a feature.
func (r *Reader) ReadKeyed(globs ...string) (map[string]Record, error) {
	records, err := r.ReadFiles(globs...)
	if err != nil {
		return nil, err
	}
	keyed := make(map[string]Record, len(records))
	for _, rec := range records {
		key := r.key(rec.Path)
		if _, exists := keyed[key]; exists {
			r.logger.Warn().
				Str("key", key).
				Str("file", rec.Path).
				Msg("Key collision, later file overwrites earlier")
		}
		keyed[key] = rec
	}
	return keyed, nil
}
