package navsearch_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/navsearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(title, content string) navsearch.IndexEntry {
	return navsearch.IndexEntry{
		Type:       navsearch.EntryPage,
		ID:         strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		Title:      title,
		TitleLower: strings.ToLower(title),
		Content:    content,
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry navsearch.IndexEntry
		query string
		want  int
	}{
		{"title phrase", entry("Caching Strategies", ""), "caching", 100},
		{"title all terms", entry("Strategies for Caching", ""), "caching strategies", 50},
		{"title missing a term", entry("Caching", ""), "caching strategies", 0},
		{"content phrase", entry("Other", "uses a write-through cache"), "write-through cache", 20},
		{"content terms add per term", entry("Other", "cache and queue and log"), "cache queue log", 15},
		{"title and content add up", entry("Cache", "the cache layer"), "cache", 120},
		{"no title skips title scoring", navsearch.IndexEntry{Content: "cache"}, "cache", 20},
		{"no match", entry("Queues", "brokers"), "cache", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := tt.entry
			got := navsearch.Score(&e, tt.query, strings.Fields(tt.query))

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	t.Run("ranks title match above content match", func(t *testing.T) {
		t.Parallel()

		entries := []navsearch.IndexEntry{
			entry("Load Balancing", "the balancer uses a write-through cache for sessions"),
			entry("Caching Strategies", ""),
		}

		results := navsearch.Rank("cach", entries, 0)

		require.Len(t, results, 2)
		assert.Equal(t, "Caching Strategies", results[0].Title)
		assert.Equal(t, "Load Balancing", results[1].Title)
	})

	t.Run("returns empty result for empty query", func(t *testing.T) {
		t.Parallel()

		entries := []navsearch.IndexEntry{entry("Caching", "cache")}

		assert.Empty(t, navsearch.Rank("", entries, 0))
		assert.Empty(t, navsearch.Rank("   ", entries, 0))
	})

	t.Run("is case insensitive", func(t *testing.T) {
		t.Parallel()

		entries := []navsearch.IndexEntry{entry("Caching", "")}

		results := navsearch.Rank("CACHING", entries, 0)

		require.Len(t, results, 1)
	})

	t.Run("excludes zero scores", func(t *testing.T) {
		t.Parallel()

		entries := []navsearch.IndexEntry{entry("Caching", ""), entry("Queues", "brokers")}

		results := navsearch.Rank("caching", entries, 0)

		require.Len(t, results, 1)
		assert.Equal(t, "Caching", results[0].Title)
	})

	t.Run("keeps index order for equal scores", func(t *testing.T) {
		t.Parallel()

		entries := []navsearch.IndexEntry{
			entry("Cache A", ""),
			entry("Cache B", ""),
			entry("Cache C", ""),
		}

		results := navsearch.Rank("cache", entries, 0)

		require.Len(t, results, 3)
		assert.Equal(t, "Cache A", results[0].Title)
		assert.Equal(t, "Cache B", results[1].Title)
		assert.Equal(t, "Cache C", results[2].Title)
	})

	t.Run("truncates to max results sorted by score", func(t *testing.T) {
		t.Parallel()

		var entries []navsearch.IndexEntry
		for i := range 30 {
			entries = append(entries, entry(fmt.Sprintf("Page %d", i), "cache"))
		}
		entries = append(entries, entry("Cache", ""))

		results := navsearch.Rank("cache", entries, 0)

		require.Len(t, results, navsearch.MaxResults)
		assert.Equal(t, "Cache", results[0].Title)
		prev := navsearch.ScoreTitlePhrase
		for i := range results {
			s := navsearch.Score(&results[i], "cache", []string{"cache"})
			assert.Positive(t, s)
			assert.LessOrEqual(t, s, prev)
			prev = s
		}
	})

	t.Run("honours explicit limit", func(t *testing.T) {
		t.Parallel()

		entries := []navsearch.IndexEntry{entry("Cache A", ""), entry("Cache B", "")}

		results := navsearch.Rank("cache", entries, 1)

		require.Len(t, results, 1)
	})

	t.Run("content term overlap can outrank all-terms title match", func(t *testing.T) {
		t.Parallel()

		query := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda"
		reversed := "lambda kappa iota theta eta zeta epsilon delta gamma beta alpha"
		entries := []navsearch.IndexEntry{
			entry(reversed, ""),
			entry("Other", reversed),
		}

		results := navsearch.Rank(query, entries, 0)

		require.Len(t, results, 2)
		assert.Equal(t, "Other", results[0].Title)
	})
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	t.Run("returns whole content when short", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "uses a cache", navsearch.Snippet("uses a cache", "cache"))
	})

	t.Run("adds ellipses on truncated sides", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("x", 30) + "cache" + strings.Repeat("y", 50)

		got := navsearch.Snippet(content, "Cache")

		assert.Equal(t, "..."+strings.Repeat("x", 20)+"cache"+strings.Repeat("y", 40)+"...", got)
	})

	t.Run("returns empty string when query is absent", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, navsearch.Snippet("uses a queue", "cache"))
	})

	t.Run("does not split multibyte characters", func(t *testing.T) {
		t.Parallel()

		content := strings.Repeat("é", 15) + "cache"

		got := navsearch.Snippet(content, "cache")

		assert.True(t, strings.HasPrefix(got, "..."))
		assert.True(t, strings.HasSuffix(got, "cache"))
		assert.True(t, utf8.ValidString(got))
	})
}

func TestContextPath(t *testing.T) {
	t.Parallel()

	e := navsearch.IndexEntry{Category: "system-design", Section: "Building Blocks"}
	assert.Equal(t, "system design > Building Blocks", navsearch.ContextPath(&e))

	e = navsearch.IndexEntry{Category: "guides"}
	assert.Equal(t, "guides", navsearch.ContextPath(&e))
}
