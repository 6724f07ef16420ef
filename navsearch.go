// Package navsearch provides search over a category/section/page documentation
// site. It loads the navigation registry and per-category manifests, fetches
// every referenced markdown page, splits each page into heading-scoped entries,
// and ranks free-text queries against the resulting flat index.
//
// This package contains domain types, interfaces and the pure indexing and
// ranking algorithms, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., http/, sqlite/, slog/).
package navsearch
