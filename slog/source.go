package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/navsearch"
)

// Ensure LoggingSource implements navsearch.Source.
var _ navsearch.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with logging. Registry and manifest loads are
// logged at info level, pages at debug level.
type LoggingSource struct {
	next   navsearch.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next navsearch.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// FetchRegistry delegates to the wrapped source and logs the operation.
func (s *LoggingSource) FetchRegistry(ctx context.Context) (registry *navsearch.Registry, err error) {
	defer func(begin time.Time) {
		var count int
		if registry != nil {
			count = len(registry.Categories)
		}
		s.logger.Info("registry load",
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchRegistry(ctx)
}

// FetchManifest delegates to the wrapped source and logs the operation.
func (s *LoggingSource) FetchManifest(ctx context.Context, dataFile string) (manifest *navsearch.Manifest, err error) {
	defer func(begin time.Time) {
		var count int
		if manifest != nil {
			count = len(manifest.Sections)
		}
		s.logger.Info("manifest load",
			"path", dataFile,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchManifest(ctx, dataFile)
}

// FetchPage delegates to the wrapped source and logs the operation.
func (s *LoggingSource) FetchPage(ctx context.Context, page string) (body string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("page fetch",
			"path", page,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchPage(ctx, page)
}
