package navsearch

import "context"

// DefaultRegistryPath is the location of the registry document relative to the site root.
const DefaultRegistryPath = "/navigation/nav.json"

// Registry is the top-level navigation document enumerating categories.
// It is loaded once per session and is immutable after load.
type Registry struct {
	// Categories is nil when the document has no categories field, which
	// aborts indexing. An empty list is a valid, empty site.
	Categories []*Category `json:"categories"`
}

// DefaultCategory returns the first category, or nil for an empty registry.
func (r *Registry) DefaultCategory() *Category {
	if r == nil || len(r.Categories) == 0 {
		return nil
	}
	return r.Categories[0]
}

// FindCategory returns the category with the given id, or nil.
func (r *Registry) FindCategory(id string) *Category {
	if r == nil {
		return nil
	}
	for _, c := range r.Categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Category is one entry of the registry.
type Category struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Heading     string `json:"heading"`
	DefaultPage string `json:"defaultPage"`
	DataFile    string `json:"dataFile"`
}

// Manifest is the per-category document enumerating sections and pages.
type Manifest struct {
	Sections []*NavItem `json:"sections"`
}

// NavItem is a node of the navigation tree. Sections are NavItems whose
// children are pages; nested children recurse. An item with a Page and no
// children is a leaf.
type NavItem struct {
	ID       string     `json:"id,omitempty"`
	Title    string     `json:"title"`
	Icon     string     `json:"icon,omitempty"`
	Page     string     `json:"page,omitempty"`
	Href     string     `json:"href,omitempty"`
	Children []*NavItem `json:"children,omitempty"`
}

// FindPage returns the page with the given id at any nesting depth, or nil.
// Only items with a page path match; the first match in navigation order wins.
func (m *Manifest) FindPage(id string) *NavItem {
	if m == nil {
		return nil
	}
	for _, section := range m.Sections {
		if item := findPage(section.Children, id); item != nil {
			return item
		}
	}
	return nil
}

func findPage(items []*NavItem, id string) *NavItem {
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.Children != nil {
			if found := findPage(item.Children, id); found != nil {
				return found
			}
			continue
		}
		if item.ID == id && item.Page != "" {
			return item
		}
	}
	return nil
}

// NextPage returns the first-level page following id in reading order,
// crossing section boundaries. It returns nil when id is the last page
// or is not found.
func (m *Manifest) NextPage(id string) *NavItem {
	if m == nil {
		return nil
	}
	found := false
	for _, section := range m.Sections {
		for _, child := range section.Children {
			if found {
				return child
			}
			if child.ID == id {
				found = true
			}
		}
	}
	return nil
}

// PageRef is a flattened reference to a single markdown page together with
// the category and section it was listed under.
type PageRef struct {
	ID       string
	Title    string
	Category string
	Section  string
	Page     string // markdown path relative to the site root
	Href     string
}

// FlattenManifest returns the page references of a manifest in navigation
// order. Items with children recurse, using their own title (or the enclosing
// section title when empty) as the section; items with a page are leaves.
func FlattenManifest(categoryID string, m *Manifest) []PageRef {
	if m == nil {
		return nil
	}
	var refs []PageRef
	for _, section := range m.Sections {
		refs = flattenItems(refs, section.Children, categoryID, section.Title)
	}
	return refs
}

func flattenItems(refs []PageRef, items []*NavItem, categoryID, section string) []PageRef {
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.Children != nil {
			title := item.Title
			if title == "" {
				title = section
			}
			refs = flattenItems(refs, item.Children, categoryID, title)
		} else if item.Page != "" {
			refs = append(refs, PageRef{
				ID:       item.ID,
				Title:    item.Title,
				Category: categoryID,
				Section:  section,
				Page:     item.Page,
				Href:     item.Href,
			})
		}
	}
	return refs
}

// Source retrieves the documents an index is built from.
// Implementations return a *FetchError describing the failed document.
type Source interface {
	// FetchRegistry retrieves and decodes the registry document.
	FetchRegistry(ctx context.Context) (*Registry, error)

	// FetchManifest retrieves and decodes a category manifest.
	// dataFile is the category's DataFile value.
	FetchManifest(ctx context.Context, dataFile string) (*Manifest, error)

	// FetchPage retrieves the raw markdown body of a page.
	// page is the PageRef's Page value.
	FetchPage(ctx context.Context, page string) (string, error)
}
