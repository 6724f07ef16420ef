package navsearch

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// MaxResults is the maximum number of entries returned by a search.
const MaxResults = 20

// Score weights.
const (
	ScoreTitlePhrase   = 100
	ScoreTitleAllTerms = 50
	ScoreContentPhrase = 20
	ScoreContentTerm   = 5
)

// Score rates how well an entry matches a query. query must already be
// lowercased and terms must be its whitespace-separated parts.
//
// A title containing the whole query scores 100, otherwise a title containing
// every term scores 50. Content containing the whole query adds 20, otherwise
// each term found in the content adds 5. There is no per-term cap.
func Score(e *IndexEntry, query string, terms []string) int {
	var score int

	if e.TitleLower != "" {
		if strings.Contains(e.TitleLower, query) {
			score += ScoreTitlePhrase
		} else if containsAll(e.TitleLower, terms) {
			score += ScoreTitleAllTerms
		}
	}

	if e.Content != "" {
		if strings.Contains(e.Content, query) {
			score += ScoreContentPhrase
		} else {
			for _, t := range terms {
				if strings.Contains(e.Content, t) {
					score += ScoreContentTerm
				}
			}
		}
	}

	return score
}

func containsAll(s string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(s, t) {
			return false
		}
	}
	return true
}

// Rank scores every entry against query and returns at most limit entries
// with a positive score, ordered by descending score. Ties keep index order.
// A limit of zero or less means MaxResults. An empty query returns nil.
func Rank(query string, entries []IndexEntry, limit int) []IndexEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = MaxResults
	}
	terms := strings.Fields(query)

	type scored struct {
		entry *IndexEntry
		score int
	}
	var matches []scored
	for i := range entries {
		if s := Score(&entries[i], query, terms); s > 0 {
			matches = append(matches, scored{entry: &entries[i], score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]IndexEntry, len(matches))
	for i, m := range matches {
		results[i] = *m.entry
	}
	return results
}

// Snippet returns the part of content around the first occurrence of query:
// up to 20 bytes before it and 40 bytes after it, with "..." marking each
// truncated side. It returns "" when content does not contain the query.
func Snippet(content, query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	if content == "" || query == "" {
		return ""
	}
	idx := strings.Index(content, query)
	if idx == -1 {
		return ""
	}

	start := max(0, idx-20)
	end := min(len(content), idx+len(query)+40)
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString("...")
	}
	b.WriteString(content[start:end])
	if end < len(content) {
		b.WriteString("...")
	}
	return b.String()
}

// ContextPath describes where an entry lives, e.g. "system design > Building Blocks".
// Empty parts are omitted and hyphens in ids are shown as spaces.
func ContextPath(e *IndexEntry) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{e.Category, e.Section} {
		if p != "" {
			parts = append(parts, strings.ReplaceAll(p, "-", " "))
		}
	}
	return strings.Join(parts, " > ")
}
