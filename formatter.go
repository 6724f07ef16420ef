package navsearch

import (
	"strconv"
	"strings"
)

// FormatEntries formats ranked entries for display. Each entry shows its
// position, title and route, then its context path and a snippet around
// query when one exists. Entries are separated by blank lines.
func FormatEntries(entries []IndexEntry, query string) string {
	if len(entries) == 0 {
		return ""
	}

	parts := make([]string, 0, len(entries))
	for i := range entries {
		e := &entries[i]

		var b strings.Builder
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		if e.IsSubSection {
			b.WriteString("# ")
		}
		b.WriteString(e.Title)
		b.WriteString("  ")
		b.WriteString(e.Route().Hash())
		if path := ContextPath(e); path != "" {
			b.WriteString("\n   ")
			b.WriteString(path)
		}
		if snippet := Snippet(e.Content, query); snippet != "" {
			b.WriteString("\n   ")
			b.WriteString(snippet)
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}
