package navsearch

import (
	"context"
	"time"
)

// Snapshot is a stored, complete search index.
type Snapshot struct {
	ID          string       `json:"id"`
	ContentHash string       `json:"contentHash"`
	EntryCount  int          `json:"entryCount"`
	CreatedAt   time.Time    `json:"createdAt"`
	Entries     []IndexEntry `json:"entries,omitempty"`
}

// Validate returns an error if the snapshot cannot be stored.
func (s *Snapshot) Validate() error {
	if len(s.Entries) == 0 {
		return Errorf(EINVALID, "snapshot entries required")
	}
	return nil
}

// SnapshotService persists built indexes so they can be searched without
// fetching the site again.
type SnapshotService interface {
	// CreateSnapshot stores entries as a new snapshot. When the latest
	// snapshot has identical content it is returned instead.
	CreateSnapshot(ctx context.Context, entries []IndexEntry) (*Snapshot, error)

	// FindLatestSnapshot returns the most recent snapshot with its entries.
	// Returns ENOTFOUND if no snapshot exists.
	FindLatestSnapshot(ctx context.Context) (*Snapshot, error)

	// FindSnapshots lists snapshots newest first, without their entries.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// DeleteSnapshot permanently removes a snapshot and its entries.
	// Returns ENOTFOUND if the snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotFilter represents a filter passed to FindSnapshots.
type SnapshotFilter struct {
	ID *string

	Offset int
	Limit  int
}
