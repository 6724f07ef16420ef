package navsearch

import "strings"

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// IsHTMLPage reports whether a page path refers to an HTML document that
// must be converted before it can be split into sections.
func IsHTMLPage(page string) bool {
	lower := strings.ToLower(page)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}
