// Package render walks a built pattern tree and renders an index page for
// every collection in it.
package render

import (
	"html/template"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kublaj/drizzle-builder/pkg/config"
	"github.com/kublaj/drizzle-builder/pkg/errors"
	"github.com/kublaj/drizzle-builder/pkg/logging"
	"github.com/kublaj/drizzle-builder/pkg/patterns"
	"github.com/kublaj/drizzle-builder/pkg/templates"
)

// ApplyFunc applies a layout body to a render context. The default is
// DefaultApply; callers with a different template engine supply their own.
type ApplyFunc func(layout string, ctx map[string]interface{}, opts *config.BuildOptions) (string, error)

// Renderer renders collection index pages. It owns the tree exclusively
// while Render runs; afterwards the tree is read-only.
type Renderer struct {
	apply ApplyFunc

	// Data is ambient build-wide data exposed to every layout
	Data map[string]interface{}

	logger zerolog.Logger
}

// New creates a Renderer. A nil apply falls back to DefaultApply.
func New(apply ApplyFunc) *Renderer {
	if apply == nil {
		apply = DefaultApply
	}
	return &Renderer{
		apply:  apply,
		logger: logging.GetLogger("render"),
	}
}

// Render walks the tree depth-first in pre-order and renders every
// collection through the layout named by opts.CollectionLayout. Patterns
// are left untouched, including their contents. A missing layout logs a
// warning and renders an empty layout body, so Contents is always set
// after a successful pass. Returns the mutated tree.
func (r *Renderer) Render(tree *patterns.Tree, tmpl *templates.Tree, opts *config.BuildOptions) (*patterns.Tree, error) {
	err := tree.WalkCollections(func(_ *patterns.Namespace, c *patterns.Collection) error {
		layout, ok := tmpl.Lookup(opts.CollectionLayout)
		if !ok {
			r.logger.Warn().
				Str("layout", opts.CollectionLayout).
				Str("collection", c.ID).
				Str("code", string(errors.ErrLayoutNotFound)).
				Msg("Collection layout not found, rendering empty layout")
		}

		ctx := map[string]interface{}{
			"collection": c,
			"data":       r.Data,
		}
		contents, err := r.apply(layout, ctx, opts)
		if err != nil {
			return errors.Wrapf(err, errors.ErrTemplateApply,
				"cannot render collection %q", c.ID).
				WithDetail("collection", c.ID)
		}

		c.Contents = contents
		c.Rendered = true
		r.logger.Debug().Str("collection", c.ID).Msg("Collection rendered")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// DefaultApply renders the layout with html/template. The context is
// exposed as the template's dot.
func DefaultApply(layout string, ctx map[string]interface{}, _ *config.BuildOptions) (string, error) {
	t, err := template.New("layout").Parse(layout)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := t.Execute(&b, ctx); err != nil {
		return "", err
	}
	return b.String(), nil
}
