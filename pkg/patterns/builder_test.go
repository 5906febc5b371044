// Test Type: Unit Test
// Description: Tests for the patterns package - tree construction, IDs, ordering, reserved properties

package patterns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kublaj/drizzle-builder/pkg/errors"
	"github.com/kublaj/drizzle-builder/pkg/patterns"
	"github.com/kublaj/drizzle-builder/pkg/reader"
)

func newBuilder() *patterns.Builder {
	return patterns.NewBuilder(patterns.BuilderOptions{
		Basedir: "src/patterns",
		RootKey: "patterns",
	})
}

func record(path string, data map[string]interface{}) reader.Record {
	if data == nil {
		data = map[string]interface{}{}
	}
	return reader.Record{Path: path, Data: data}
}

// collectionAt walks namespace keys from the root to a collection
func collectionAt(t *testing.T, tree *patterns.Tree, keys ...string) *patterns.Collection {
	t.Helper()
	ns := tree.Root
	for _, k := range keys {
		require.Contains(t, ns.Children, k)
		ns = ns.Children[k]
	}
	require.NotNil(t, ns.Collection)
	return ns.Collection
}

func TestBuilder_Build(t *testing.T) {
	t.Run("ids_follow_directory_path", func(t *testing.T) {
		tree, err := newBuilder().Build([]reader.Record{
			record("src/patterns/components/orange.html", map[string]interface{}{
				"contents": "<p>orange</p>",
			}),
		})
		require.NoError(t, err)

		c := collectionAt(t, tree, "patterns", "components")
		require.Contains(t, c.Items, "orange")
		assert.Equal(t, "patterns.components.orange", c.Items["orange"].ID)
		assert.Equal(t, "patterns.components", c.ID)
		assert.Equal(t, "<p>orange</p>", c.Items["orange"].Contents)
	})

	t.Run("top_level_file_roots_at_root_key", func(t *testing.T) {
		tree, err := newBuilder().Build([]reader.Record{
			record("src/patterns/pink.html", nil),
		})
		require.NoError(t, err)

		c := collectionAt(t, tree, "patterns")
		assert.Equal(t, "patterns.pink", c.Items["pink"].ID)
	})

	t.Run("collection_name_defaults_to_title_cased_dir", func(t *testing.T) {
		tree, err := newBuilder().Build([]reader.Record{
			record("src/patterns/form-elements/input.html", nil),
		})
		require.NoError(t, err)

		c := collectionAt(t, tree, "patterns", "form-elements")
		assert.Equal(t, "Form Elements", c.Name)
	})

	t.Run("pattern_name_defaults_to_title_cased_key", func(t *testing.T) {
		tree, err := newBuilder().Build([]reader.Record{
			record("src/patterns/components/01-big-button.html", nil),
			record("src/patterns/components/link.html", map[string]interface{}{
				"name": "Fancy Link",
			}),
		})
		require.NoError(t, err)

		c := collectionAt(t, tree, "patterns", "components")
		assert.Equal(t, "Big Button", c.Items["big-button"].Name)
		assert.Equal(t, "Fancy Link", c.Items["link"].Name)
	})

	t.Run("ordering_prefix_stripped_from_keys", func(t *testing.T) {
		tree, err := newBuilder().Build([]reader.Record{
			record("src/patterns/components/01-intro.html", nil),
		})
		require.NoError(t, err)

		c := collectionAt(t, tree, "patterns", "components")
		assert.Contains(t, c.Items, "intro")
		assert.Equal(t, "patterns.components.intro", c.Items["intro"].ID)
	})
}

func TestBuilder_ReservedProperties(t *testing.T) {
	t.Run("pattern_level_id_is_fatal", func(t *testing.T) {
		_, err := newBuilder().Build([]reader.Record{
			record("src/patterns/components/orange.html", map[string]interface{}{
				"id": "x",
			}),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrReservedProperty))
		assert.ErrorContains(t, err, `"id"`)
		assert.ErrorContains(t, err, "src/patterns/components/orange.html")
	})

	t.Run("collection_level_items_is_fatal", func(t *testing.T) {
		_, err := newBuilder().Build([]reader.Record{
			record("src/patterns/components/collection.yaml", map[string]interface{}{
				"items": []string{"nope"},
			}),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrReservedProperty))
		assert.ErrorContains(t, err, `"items"`)
	})

	t.Run("collection_level_patterns_is_fatal", func(t *testing.T) {
		_, err := newBuilder().Build([]reader.Record{
			record("src/patterns/components/collection.yaml", map[string]interface{}{
				"patterns": []string{"nope"},
			}),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrReservedProperty))
		assert.ErrorContains(t, err, `"patterns"`)
	})
}

func TestBuilder_CollectionFrontMatter(t *testing.T) {
	tree, err := newBuilder().Build([]reader.Record{
		record("src/patterns/components/button.html", nil),
		record("src/patterns/components/collection.yaml", map[string]interface{}{
			"name":  "UI Components",
			"order": []interface{}{"button"},
		}),
	})
	require.NoError(t, err)

	c := collectionAt(t, tree, "patterns", "components")
	assert.Equal(t, "UI Components", c.Name)
	assert.Equal(t, []string{"button"}, c.Order)
	// the collection record does not become a pattern
	assert.NotContains(t, c.Items, "collection")
}

func TestBuilder_OrderingAndHidden(t *testing.T) {
	recs := []reader.Record{
		record("src/patterns/components/a.html", nil),
		record("src/patterns/components/b.html", map[string]interface{}{
			"hidden": true,
		}),
		record("src/patterns/components/c.html", nil),
		record("src/patterns/components/d.html", nil),
		record("src/patterns/components/collection.yaml", map[string]interface{}{
			"order": []interface{}{"d", "a"},
		}),
	}

	tree, err := newBuilder().Build(recs)
	require.NoError(t, err)

	c := collectionAt(t, tree, "patterns", "components")

	// Items holds everything, hidden or not
	assert.Len(t, c.Items, 4)

	// Patterns: explicit prefix [d, a], then unlisted c; hidden b excluded
	var keys []string
	for _, p := range c.Patterns {
		keys = append(keys, p.ID)
	}
	assert.Equal(t, []string{
		"patterns.components.d",
		"patterns.components.a",
		"patterns.components.c",
	}, keys)
}

func TestBuilder_NaturalOrdering(t *testing.T) {
	tree, err := newBuilder().Build([]reader.Record{
		record("src/patterns/components/pattern10.html", nil),
		record("src/patterns/components/pattern2.html", nil),
	})
	require.NoError(t, err)

	c := collectionAt(t, tree, "patterns", "components")
	require.Len(t, c.Patterns, 2)
	assert.Equal(t, "patterns.components.pattern2", c.Patterns[0].ID)
	assert.Equal(t, "patterns.components.pattern10", c.Patterns[1].ID)
}

func TestBuilder_Determinism(t *testing.T) {
	recs := []reader.Record{
		record("src/patterns/components/beta.html", nil),
		record("src/patterns/components/alpha.html", nil),
		record("src/patterns/typography/head.html", nil),
	}
	reversed := []reader.Record{recs[2], recs[1], recs[0]}

	b := newBuilder()
	tree1, err := b.Build(recs)
	require.NoError(t, err)
	tree2, err := b.Build(reversed)
	require.NoError(t, err)

	var ids1, ids2 []string
	require.NoError(t, tree1.WalkCollections(func(_ *patterns.Namespace, c *patterns.Collection) error {
		ids1 = append(ids1, c.ID)
		for _, p := range c.Patterns {
			ids1 = append(ids1, p.ID)
		}
		return nil
	}))
	require.NoError(t, tree2.WalkCollections(func(_ *patterns.Namespace, c *patterns.Collection) error {
		ids2 = append(ids2, c.ID)
		for _, p := range c.Patterns {
			ids2 = append(ids2, p.ID)
		}
		return nil
	}))

	assert.Equal(t, ids1, ids2)
	assert.Equal(t, []string{
		"patterns.components",
		"patterns.components.alpha",
		"patterns.components.beta",
		"patterns.typography",
		"patterns.typography.head",
	}, ids1)
}

func TestBuilder_DataExcludesContentsAndReserved(t *testing.T) {
	tree, err := newBuilder().Build([]reader.Record{
		record("src/patterns/components/orange.html", map[string]interface{}{
			"contents": "<p>x</p>",
			"name":     "Orange",
			"weight":   3,
		}),
	})
	require.NoError(t, err)

	p := collectionAt(t, tree, "patterns", "components").Items["orange"]
	assert.NotContains(t, p.Data, "contents")
	assert.NotContains(t, p.Data, "id")
	assert.Equal(t, 3, p.Data["weight"])
	assert.Equal(t, "<p>x</p>", p.Contents)
}
