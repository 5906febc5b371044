// Test Type: Unit Test
// Description: Tests for the reader package - glob resolution and concurrent file reading

package reader_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kublaj/drizzle-builder/pkg/errors"
	"github.com/kublaj/drizzle-builder/pkg/reader"
)

// testFS builds an in-memory filesystem from path -> contents
func testFS(t *testing.T, files map[string]string) afero.IOFS {
	t.Helper()
	memFs := afero.NewMemMapFs()
	for path, contents := range files {
		require.NoError(t, afero.WriteFile(memFs, path, []byte(contents), 0644))
	}
	return afero.NewIOFS(memFs)
}

func TestReader_Files(t *testing.T) {
	fsys := testFS(t, map[string]string{
		"src/patterns/orange.html":            "<p>orange</p>",
		"src/patterns/components/button.html": "<button/>",
		"src/patterns/components/notes.md":    "# notes",
		"src/other.txt":                       "nope",
	})

	r := reader.New(reader.Options{FS: fsys})

	files, err := r.Files("src/patterns/**/*.html")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/patterns/components/button.html",
		"src/patterns/orange.html",
	}, files)

	t.Run("multiple_globs", func(t *testing.T) {
		files, err := r.Files("src/patterns/**/*.html", "src/patterns/**/*.md")
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})
}

func TestReader_Dirs(t *testing.T) {
	fsys := testFS(t, map[string]string{
		"src/patterns/orange.html":            "x",
		"src/patterns/components/button.html": "x",
		"src/patterns/typography/head.html":   "x",
	})

	r := reader.New(reader.Options{FS: fsys})

	dirs, err := r.Dirs("src/patterns/*/*.html")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/patterns/components",
		"src/patterns/typography",
	}, dirs)
}

func TestReader_ReadFiles(t *testing.T) {
	fsys := testFS(t, map[string]string{
		"src/patterns/orange.html": "---\nname: Orange\n---\n<p>juice</p>",
		"src/patterns/intro.md":    "# Intro",
	})

	r := reader.New(reader.Options{FS: fsys})

	records, err := r.ReadFiles("src/patterns/*.{html,md}")
	require.NoError(t, err)
	require.Len(t, records, 2)

	byPath := make(map[string]reader.Record)
	for _, rec := range records {
		byPath[rec.Path] = rec
	}

	orange := byPath["src/patterns/orange.html"]
	assert.Equal(t, "Orange", orange.Data["name"])
	assert.Equal(t, "<p>juice</p>", orange.Data["contents"])

	intro := byPath["src/patterns/intro.md"]
	assert.Contains(t, intro.Data["contents"], "<h1")
}

func TestReader_ReadFiles_ParseErrorAborts(t *testing.T) {
	fsys := testFS(t, map[string]string{
		"src/patterns/good.html": "<p>fine</p>",
		"src/patterns/bad.html":  "---\n: [broken\n---\nbody",
	})

	r := reader.New(reader.Options{FS: fsys})

	_, err := r.ReadFiles("src/patterns/*.html")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrParse))
	assert.ErrorContains(t, err, "bad.html")
}

func TestReader_ReadKeyed(t *testing.T) {
	t.Run("keys_derived_from_path", func(t *testing.T) {
		fsys := testFS(t, map[string]string{
			"src/patterns/01-intro.html": "<p>a</p>",
			"src/patterns/button.html":   "<p>b</p>",
		})

		r := reader.New(reader.Options{FS: fsys})

		keyed, err := r.ReadKeyed("src/patterns/*.html")
		require.NoError(t, err)
		require.Len(t, keyed, 2)
		assert.Equal(t, "src/patterns/01-intro.html", keyed["intro"].Path)
		assert.Equal(t, "src/patterns/button.html", keyed["button"].Path)
	})

	t.Run("collision_keeps_later_record", func(t *testing.T) {
		// Both files key to "button"; resolution order is sorted here,
		// so the .md file wins.
		fsys := testFS(t, map[string]string{
			"src/patterns/button.html": "<p>html</p>",
			"src/patterns/button.md":   "markdown",
		})

		r := reader.New(reader.Options{FS: fsys})

		keyed, err := r.ReadKeyed("src/patterns/*")
		require.NoError(t, err)
		require.Len(t, keyed, 1)
		assert.Equal(t, "src/patterns/button.md", keyed["button"].Path)
	})

	t.Run("custom_key_func", func(t *testing.T) {
		fsys := testFS(t, map[string]string{
			"src/patterns/01-intro.html": "<p>a</p>",
		})

		r := reader.New(reader.Options{
			FS:  fsys,
			Key: func(p string) string { return "fixed" },
		})

		keyed, err := r.ReadKeyed("src/patterns/*.html")
		require.NoError(t, err)
		assert.Contains(t, keyed, "fixed")
	})
}
