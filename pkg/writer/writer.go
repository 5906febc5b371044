// Package writer persists rendered resources to the output directory.
package writer

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/kublaj/drizzle-builder/pkg/errors"
	"github.com/kublaj/drizzle-builder/pkg/logging"
	"github.com/kublaj/drizzle-builder/pkg/paths"
	"github.com/kublaj/drizzle-builder/pkg/patterns"
)

// Writer writes tree nodes to files under a destination directory
type Writer struct {
	dest   string
	logger zerolog.Logger
}

// New creates a Writer targeting dest
func New(dest string) *Writer {
	return &Writer{
		dest:   dest,
		logger: logging.GetLogger("writer"),
	}
}

// WriteTree persists every node carrying contents: rendered collection
// pages and pattern bodies. Output paths derive from each node's ID.
func (w *Writer) WriteTree(tree *patterns.Tree) error {
	count := 0
	err := tree.WalkCollections(func(_ *patterns.Namespace, c *patterns.Collection) error {
		if c.Rendered {
			if err := w.WriteResource(c.ID, c.Contents); err != nil {
				return err
			}
			count++
		}
		// Items, not the Patterns view: hidden only affects navigation,
		// hidden patterns still get their page
		keys := make([]string, 0, len(c.Items))
		for k := range c.Items {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			p := c.Items[k]
			if p.Contents == "" {
				continue
			}
			if err := w.WriteResource(p.ID, p.Contents); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return err
	}
	w.logger.Info().Int("fileCount", count).Str("dest", w.dest).Msg("Output written")
	return nil
}

// WriteResource writes contents at ResourcePath(id, dest), creating parent
// directories as needed
func (w *Writer) WriteResource(id, contents string) error {
	out := paths.ResourcePath(id, w.dest)
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrOutputWrite, "cannot create directory for %s", out)
	}
	if err := os.WriteFile(out, []byte(contents), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrOutputWrite, "cannot write %s", out).
			WithDetail("resource", id)
	}
	w.logger.Debug().Str("resource", id).Str("path", out).Msg("Resource written")
	return nil
}
