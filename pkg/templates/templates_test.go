// Test Type: Unit Test
// Description: Tests for the templates package - dot-path addressable layout tree

package templates_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kublaj/drizzle-builder/pkg/reader"
	"github.com/kublaj/drizzle-builder/pkg/templates"
)

func TestLoader_Load(t *testing.T) {
	memFs := afero.NewMemMapFs()
	files := map[string]string{
		"src/layouts/collection.html":   "<section>{{.}}</section>",
		"src/layouts/partials/nav.html": "<nav/>",
	}
	for path, contents := range files {
		require.NoError(t, afero.WriteFile(memFs, path, []byte(contents), 0644))
	}

	loader, err := templates.NewLoader(reader.Options{FS: afero.NewIOFS(memFs)}, "src/layouts")
	require.NoError(t, err)

	tree, err := loader.Load("src/layouts/**/*.html")
	require.NoError(t, err)

	t.Run("top_level_lookup", func(t *testing.T) {
		body, ok := tree.Lookup("collection")
		require.True(t, ok)
		assert.Equal(t, "<section>{{.}}</section>", body)
	})

	t.Run("nested_lookup", func(t *testing.T) {
		body, ok := tree.Lookup("partials.nav")
		require.True(t, ok)
		assert.Equal(t, "<nav/>", body)
	})

	t.Run("missing_path", func(t *testing.T) {
		_, ok := tree.Lookup("nope")
		assert.False(t, ok)
		_, ok = tree.Lookup("partials.nope")
		assert.False(t, ok)
		_, ok = tree.Lookup("partials.nav.deeper")
		assert.False(t, ok)
	})

	t.Run("layouts_are_read_raw", func(t *testing.T) {
		// A layout starting with a fence must not lose a front-matter head
		require.NoError(t, afero.WriteFile(memFs,
			"src/layouts/fenced.html", []byte("---\nraw: true\n---\nbody"), 0644))

		tree, err := loader.Load("src/layouts/*.html")
		require.NoError(t, err)

		body, ok := tree.Lookup("fenced")
		require.True(t, ok)
		assert.Equal(t, "---\nraw: true\n---\nbody", body)
	})
}
