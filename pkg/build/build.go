// Package build sequences a full drizzle build: read source files, fold
// them into the pattern tree, load layouts, render collections, write
// output. Phases run strictly in order; the first error aborts the build.
package build

import (
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/kublaj/drizzle-builder/pkg/config"
	"github.com/kublaj/drizzle-builder/pkg/logging"
	"github.com/kublaj/drizzle-builder/pkg/parsers"
	"github.com/kublaj/drizzle-builder/pkg/patterns"
	"github.com/kublaj/drizzle-builder/pkg/reader"
	"github.com/kublaj/drizzle-builder/pkg/render"
	"github.com/kublaj/drizzle-builder/pkg/templates"
	"github.com/kublaj/drizzle-builder/pkg/writer"
)

// Pipeline runs drizzle builds
type Pipeline struct {
	opts   *config.BuildOptions
	fsys   fs.FS
	set    *parsers.Set
	apply  render.ApplyFunc
	data   map[string]interface{}
	logger zerolog.Logger
}

// Option customizes a Pipeline
type Option func(*Pipeline)

// WithFS sets the filesystem source files are read from
func WithFS(fsys fs.FS) Option {
	return func(p *Pipeline) { p.fsys = fsys }
}

// WithParsers sets the content parser rule set
func WithParsers(set *parsers.Set) Option {
	return func(p *Pipeline) { p.set = set }
}

// WithApply sets the template-application function
func WithApply(apply render.ApplyFunc) Option {
	return func(p *Pipeline) { p.apply = apply }
}

// WithData sets ambient build-wide data exposed to layouts
func WithData(data map[string]interface{}) Option {
	return func(p *Pipeline) { p.data = data }
}

// New creates a Pipeline for the given build options
func New(opts *config.BuildOptions, options ...Option) *Pipeline {
	p := &Pipeline{
		opts:   opts,
		logger: logging.GetLogger("build"),
	}
	for _, o := range options {
		o(p)
	}
	return p
}

// Run executes one build and returns the rendered tree. The tree is
// read-only once Run returns.
func (p *Pipeline) Run() (*patterns.Tree, error) {
	start := time.Now()
	defer logging.LogDuration(start, "build")

	r := reader.New(reader.Options{
		FS:          p.fsys,
		Parsers:     p.set,
		Concurrency: p.opts.Concurrency,
	})

	p.logger.Debug().Str("src", p.opts.Src).Msg("Reading pattern sources")
	records, err := r.ReadFiles(p.opts.Src)
	if err != nil {
		return nil, err
	}

	builder := patterns.NewBuilder(patterns.BuilderOptions{
		Basedir: p.opts.Basedir,
		RootKey: p.opts.RootKey,
	})
	tree, err := builder.Build(records)
	if err != nil {
		return nil, err
	}

	p.logger.Debug().Str("layouts", p.opts.Layouts).Msg("Loading layouts")
	loader, err := templates.NewLoader(reader.Options{
		FS:          p.fsys,
		Concurrency: p.opts.Concurrency,
	}, p.opts.LayoutsBasedir)
	if err != nil {
		return nil, err
	}
	tmpl, err := loader.Load(p.opts.Layouts)
	if err != nil {
		return nil, err
	}

	renderer := render.New(p.apply)
	renderer.Data = p.data
	tree, err = renderer.Render(tree, tmpl, p.opts)
	if err != nil {
		return nil, err
	}

	if err := writer.New(p.opts.Dest).WriteTree(tree); err != nil {
		return nil, err
	}

	p.logger.Info().Str("dest", p.opts.Dest).Msg("Build complete")
	return tree, nil
}

// Model runs the read and build phases only, returning the unrendered
// tree. Used by read-only views such as the list command.
func (p *Pipeline) Model() (*patterns.Tree, error) {
	r := reader.New(reader.Options{
		FS:          p.fsys,
		Parsers:     p.set,
		Concurrency: p.opts.Concurrency,
	})
	records, err := r.ReadFiles(p.opts.Src)
	if err != nil {
		return nil, err
	}
	builder := patterns.NewBuilder(patterns.BuilderOptions{
		Basedir: p.opts.Basedir,
		RootKey: p.opts.RootKey,
	})
	return builder.Build(records)
}
