// Package config loads drizzle build options.
//
// Options are layered: built-in defaults, then drizzle.toml or .drizzle.toml
// from the project directory, then DRIZZLE_ environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kublaj/drizzle-builder/pkg/errors"
)

// Config file names tried in the project directory, in order
var configFileNames = []string{"drizzle.toml", ".drizzle.toml"}

// BuildOptions holds everything the build pipeline consumes
type BuildOptions struct {
	// Src is the glob matching pattern source files
	Src string `koanf:"src"`

	// Basedir anchors pattern directory segments; its last element
	// becomes the ID root segment
	Basedir string `koanf:"basedir"`

	// RootKey roots IDs for files outside Basedir
	RootKey string `koanf:"root_key"`

	// Layouts is the glob matching layout templates
	Layouts string `koanf:"layouts"`

	// LayoutsBasedir anchors layout tree keys
	LayoutsBasedir string `koanf:"layouts_basedir"`

	// CollectionLayout is the dot-path of the collection layout in the
	// template tree
	CollectionLayout string `koanf:"collection_layout"`

	// Dest is the output directory
	Dest string `koanf:"dest"`

	// Concurrency bounds parallel file reads
	Concurrency int `koanf:"concurrency"`
}

// Defaults returns the built-in option values
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"src":               "src/patterns/**/*.{html,md}",
		"basedir":           "src/patterns",
		"root_key":          "patterns",
		"layouts":           "src/layouts/**/*.html",
		"layouts_basedir":   "src/layouts",
		"collection_layout": "collection",
		"dest":              "dist",
		"concurrency":       8,
	}
}

// Load reads build options for the project rooted at dir
func Load(dir string) (*BuildOptions, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to load config from %s", path)
		}
		break
	}

	// Option keys are flat snake_case, so DRIZZLE_ROOT_KEY -> root_key
	err := k.Load(env.Provider("DRIZZLE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DRIZZLE_"))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	var opts BuildOptions
	if err := k.Unmarshal("", &opts); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal options")
	}
	return &opts, nil
}
