package mock

import (
	"context"

	"github.com/fwojciec/navsearch"
)

var _ navsearch.IndexBuilder = (*IndexBuilder)(nil)

// IndexBuilder is a mock implementation of navsearch.IndexBuilder.
type IndexBuilder struct {
	BuildIndexFn func(ctx context.Context) ([]navsearch.IndexEntry, error)
}

func (b *IndexBuilder) BuildIndex(ctx context.Context) ([]navsearch.IndexEntry, error) {
	return b.BuildIndexFn(ctx)
}

var _ navsearch.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of navsearch.Searcher.
type Searcher struct {
	SearchFn func(query string) []navsearch.IndexEntry
}

func (s *Searcher) Search(query string) []navsearch.IndexEntry {
	return s.SearchFn(query)
}

var _ navsearch.Navigator = (*Navigator)(nil)

// Navigator is a mock implementation of navsearch.Navigator.
type Navigator struct {
	NavigateFn func(ctx context.Context, route navsearch.Route) error
}

func (n *Navigator) Navigate(ctx context.Context, route navsearch.Route) error {
	return n.NavigateFn(ctx, route)
}
