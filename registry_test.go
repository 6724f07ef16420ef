package navsearch_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/navsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManifest() *navsearch.Manifest {
	return &navsearch.Manifest{
		Sections: []*navsearch.NavItem{
			{
				Title: "Basics",
				Children: []*navsearch.NavItem{
					{ID: "intro", Title: "Introduction", Page: "content/intro.md"},
					{ID: "setup", Title: "Setup", Page: "content/setup.md"},
				},
			},
			{
				Title: "Advanced",
				Children: []*navsearch.NavItem{
					{ID: "tuning", Title: "Tuning", Page: "content/tuning.md"},
				},
			},
		},
	}
}

func TestRegistry_Decode(t *testing.T) {
	t.Parallel()

	t.Run("decodes categories", func(t *testing.T) {
		t.Parallel()

		data := `{"categories":[{"id":"guides","title":"Guides","heading":"User Guides","defaultPage":"intro","dataFile":"/navigation/guides.json"}]}`

		var r navsearch.Registry
		require.NoError(t, json.Unmarshal([]byte(data), &r))

		require.Len(t, r.Categories, 1)
		assert.Equal(t, &navsearch.Category{
			ID:          "guides",
			Title:       "Guides",
			Heading:     "User Guides",
			DefaultPage: "intro",
			DataFile:    "/navigation/guides.json",
		}, r.Categories[0])
	})

	t.Run("distinguishes missing from empty categories", func(t *testing.T) {
		t.Parallel()

		var missing, empty navsearch.Registry
		require.NoError(t, json.Unmarshal([]byte(`{}`), &missing))
		require.NoError(t, json.Unmarshal([]byte(`{"categories":[]}`), &empty))

		assert.Nil(t, missing.Categories)
		assert.NotNil(t, empty.Categories)
	})
}

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	r := &navsearch.Registry{Categories: []*navsearch.Category{{ID: "a"}, {ID: "b"}}}

	assert.Equal(t, "a", r.DefaultCategory().ID)
	assert.Equal(t, "b", r.FindCategory("b").ID)
	assert.Nil(t, r.FindCategory("c"))
	assert.Nil(t, (&navsearch.Registry{}).DefaultCategory())
}

func TestManifest_Navigation(t *testing.T) {
	t.Parallel()

	m := testManifest()

	t.Run("finds page by id", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Setup", m.FindPage("setup").Title)
		assert.Nil(t, m.FindPage("missing"))
	})

	t.Run("finds nested page", func(t *testing.T) {
		t.Parallel()

		nested := &navsearch.Manifest{Sections: []*navsearch.NavItem{
			{Title: "Reference", Children: []*navsearch.NavItem{
				{ID: "cli", Title: "CLI", Children: []*navsearch.NavItem{
					{ID: "flags", Title: "Flags", Page: "ref/flags.md"},
				}},
				{ID: "group", Title: "Group"},
			}},
		}}

		require.NotNil(t, nested.FindPage("flags"))
		assert.Equal(t, "ref/flags.md", nested.FindPage("flags").Page)
		assert.Nil(t, nested.FindPage("cli"))
		assert.Nil(t, nested.FindPage("group"))
	})

	t.Run("next page crosses sections", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "setup", m.NextPage("intro").ID)
		assert.Equal(t, "tuning", m.NextPage("setup").ID)
	})

	t.Run("next page is nil at the end", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, m.NextPage("tuning"))
		assert.Nil(t, m.NextPage("missing"))
	})
}

func TestFlattenManifest(t *testing.T) {
	t.Parallel()

	t.Run("flattens sections in order", func(t *testing.T) {
		t.Parallel()

		refs := navsearch.FlattenManifest("guides", testManifest())

		require.Len(t, refs, 3)
		assert.Equal(t, navsearch.PageRef{
			ID:       "intro",
			Title:    "Introduction",
			Category: "guides",
			Section:  "Basics",
			Page:     "content/intro.md",
		}, refs[0])
		assert.Equal(t, "Advanced", refs[2].Section)
	})

	t.Run("recurses into nested children", func(t *testing.T) {
		t.Parallel()

		m := &navsearch.Manifest{
			Sections: []*navsearch.NavItem{{
				Title: "Reference",
				Children: []*navsearch.NavItem{
					{Title: "CLI", Children: []*navsearch.NavItem{
						{ID: "cli-run", Title: "run", Page: "ref/run.md"},
					}},
					{Children: []*navsearch.NavItem{
						{ID: "untitled", Title: "Untitled", Page: "ref/untitled.md"},
					}},
				},
			}},
		}

		refs := navsearch.FlattenManifest("ref", m)

		require.Len(t, refs, 2)
		assert.Equal(t, "CLI", refs[0].Section)
		assert.Equal(t, "Reference", refs[1].Section)
	})

	t.Run("skips items without page", func(t *testing.T) {
		t.Parallel()

		m := &navsearch.Manifest{
			Sections: []*navsearch.NavItem{{
				Title:    "Links",
				Children: []*navsearch.NavItem{{ID: "ext", Title: "External", Href: "https://example.com"}},
			}},
		}

		assert.Empty(t, navsearch.FlattenManifest("x", m))
	})

	t.Run("tolerates sections without children", func(t *testing.T) {
		t.Parallel()

		m := &navsearch.Manifest{Sections: []*navsearch.NavItem{{Title: "Empty"}}}

		assert.Empty(t, navsearch.FlattenManifest("x", m))
		assert.Empty(t, navsearch.FlattenManifest("x", nil))
	})
}
