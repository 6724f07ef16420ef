package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/navsearch"
)

// Ensure LoggingSnapshotService implements navsearch.SnapshotService.
var _ navsearch.SnapshotService = (*LoggingSnapshotService)(nil)

// LoggingSnapshotService wraps a SnapshotService with logging.
type LoggingSnapshotService struct {
	next   navsearch.SnapshotService
	logger *slog.Logger
}

// NewLoggingSnapshotService creates a new LoggingSnapshotService.
func NewLoggingSnapshotService(next navsearch.SnapshotService, logger *slog.Logger) *LoggingSnapshotService {
	return &LoggingSnapshotService{next: next, logger: logger}
}

// CreateSnapshot delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) CreateSnapshot(ctx context.Context, entries []navsearch.IndexEntry) (snap *navsearch.Snapshot, err error) {
	defer func(begin time.Time) {
		attrs := []any{"count", len(entries), "duration", time.Since(begin), "err", err}
		if snap != nil {
			attrs = append(attrs, "id", snap.ID, "hash", snap.ContentHash)
		}
		s.logger.Info("snapshot create", attrs...)
	}(time.Now())
	return s.next.CreateSnapshot(ctx, entries)
}

// FindLatestSnapshot delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) FindLatestSnapshot(ctx context.Context) (snap *navsearch.Snapshot, err error) {
	defer func(begin time.Time) {
		var id string
		var count int
		if snap != nil {
			id, count = snap.ID, snap.EntryCount
		}
		s.logger.Info("snapshot load",
			"id", id,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindLatestSnapshot(ctx)
}

// FindSnapshots delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) FindSnapshots(ctx context.Context, filter navsearch.SnapshotFilter) (snaps []*navsearch.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot list",
			"count", len(snaps),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshots(ctx, filter)
}

// DeleteSnapshot delegates to the wrapped service and logs the operation.
func (s *LoggingSnapshotService) DeleteSnapshot(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot delete",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSnapshot(ctx, id)
}
