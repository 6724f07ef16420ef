package mock

import (
	"context"

	"github.com/fwojciec/navsearch"
)

var _ navsearch.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of navsearch.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn     func(ctx context.Context, entries []navsearch.IndexEntry) (*navsearch.Snapshot, error)
	FindLatestSnapshotFn func(ctx context.Context) (*navsearch.Snapshot, error)
	FindSnapshotsFn      func(ctx context.Context, filter navsearch.SnapshotFilter) ([]*navsearch.Snapshot, error)
	DeleteSnapshotFn     func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, entries []navsearch.IndexEntry) (*navsearch.Snapshot, error) {
	return s.CreateSnapshotFn(ctx, entries)
}

func (s *SnapshotService) FindLatestSnapshot(ctx context.Context) (*navsearch.Snapshot, error) {
	return s.FindLatestSnapshotFn(ctx)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter navsearch.SnapshotFilter) ([]*navsearch.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}
