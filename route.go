package navsearch

import "strings"

// Route addresses a page within a category, optionally at a heading anchor.
type Route struct {
	Category string
	Page     string
	Anchor   string
}

// Hash returns the URL fragment for the route: "#category/page" or
// "#category/page#anchor".
func (r Route) Hash() string {
	hash := "#" + r.Category + "/" + r.Page
	if r.Anchor != "" {
		hash += "#" + r.Anchor
	}
	return hash
}

// ParseRoute parses a URL fragment produced by Route.Hash. The leading "#" is
// optional. A fragment without a "/" names a page in the default category and
// leaves Category empty.
func ParseRoute(hash string) Route {
	hash = strings.TrimPrefix(hash, "#")

	var r Route
	if before, after, ok := strings.Cut(hash, "/"); ok {
		r.Category = before
		hash = after
	}
	r.Page, r.Anchor, _ = strings.Cut(hash, "#")
	return r
}
