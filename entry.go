package navsearch

import "context"

// EntryType is the kind of object an IndexEntry points at.
type EntryType string

// EntryPage is the only entry type; sections are pages with an anchor.
const EntryPage EntryType = "page"

// IndexEntry is one searchable unit: either a whole page or one
// heading-delimited section within it.
type IndexEntry struct {
	Type         EntryType `json:"type"`
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Section      string    `json:"section"`
	Page         string    `json:"page"`
	URL          string    `json:"url"`
	Anchor       string    `json:"anchor"`
	Content      string    `json:"content"`
	TitleLower   string    `json:"titleLower"`
	IsHeader     bool      `json:"isHeader"`
	IsSubSection bool      `json:"isSubSection"`
}

// Route returns the navigation target of the entry.
func (e *IndexEntry) Route() Route {
	return Route{Category: e.Category, Page: e.ID, Anchor: e.Anchor}
}

// IndexStatus is the lifecycle state of a search index.
type IndexStatus int

// Index lifecycle states. Queries return results only when Ready.
const (
	IndexIdle IndexStatus = iota
	IndexBuilding
	IndexReady
)

func (s IndexStatus) String() string {
	switch s {
	case IndexIdle:
		return "idle"
	case IndexBuilding:
		return "building"
	case IndexReady:
		return "ready"
	default:
		return "unknown"
	}
}

// IndexBuilder produces a complete, ordered search index.
type IndexBuilder interface {
	// BuildIndex returns every entry of the index in insertion order.
	// A returned error means no index is available.
	BuildIndex(ctx context.Context) ([]IndexEntry, error)
}

// Searcher ranks free-text queries against an index.
type Searcher interface {
	// Search returns up to MaxResults entries ranked by descending score.
	// It returns an empty result for an empty query or an index that is not ready.
	Search(query string) []IndexEntry
}

// Navigator moves the reader to a page, optionally scrolled to an anchor.
type Navigator interface {
	Navigate(ctx context.Context, route Route) error
}
