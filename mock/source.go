package mock

import (
	"context"

	"github.com/fwojciec/navsearch"
)

var _ navsearch.Source = (*Source)(nil)

// Source is a mock implementation of navsearch.Source.
type Source struct {
	FetchRegistryFn func(ctx context.Context) (*navsearch.Registry, error)
	FetchManifestFn func(ctx context.Context, dataFile string) (*navsearch.Manifest, error)
	FetchPageFn     func(ctx context.Context, page string) (string, error)
}

func (s *Source) FetchRegistry(ctx context.Context) (*navsearch.Registry, error) {
	return s.FetchRegistryFn(ctx)
}

func (s *Source) FetchManifest(ctx context.Context, dataFile string) (*navsearch.Manifest, error) {
	return s.FetchManifestFn(ctx, dataFile)
}

func (s *Source) FetchPage(ctx context.Context, page string) (string, error) {
	return s.FetchPageFn(ctx, page)
}
