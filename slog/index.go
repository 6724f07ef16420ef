package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/navsearch"
)

// Ensure LoggingIndexBuilder implements navsearch.IndexBuilder.
var _ navsearch.IndexBuilder = (*LoggingIndexBuilder)(nil)

// LoggingIndexBuilder wraps an IndexBuilder with logging.
type LoggingIndexBuilder struct {
	next   navsearch.IndexBuilder
	logger *slog.Logger
}

// NewLoggingIndexBuilder creates a new LoggingIndexBuilder.
func NewLoggingIndexBuilder(next navsearch.IndexBuilder, logger *slog.Logger) *LoggingIndexBuilder {
	return &LoggingIndexBuilder{next: next, logger: logger}
}

// BuildIndex delegates to the wrapped builder and logs the operation.
func (b *LoggingIndexBuilder) BuildIndex(ctx context.Context) (entries []navsearch.IndexEntry, err error) {
	defer func(begin time.Time) {
		b.logger.Info("index build",
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.BuildIndex(ctx)
}

// Ensure LoggingNavigator implements navsearch.Navigator.
var _ navsearch.Navigator = (*LoggingNavigator)(nil)

// LoggingNavigator wraps a Navigator with logging.
type LoggingNavigator struct {
	next   navsearch.Navigator
	logger *slog.Logger
}

// NewLoggingNavigator creates a new LoggingNavigator.
func NewLoggingNavigator(next navsearch.Navigator, logger *slog.Logger) *LoggingNavigator {
	return &LoggingNavigator{next: next, logger: logger}
}

// Navigate delegates to the wrapped navigator and logs the route.
func (n *LoggingNavigator) Navigate(ctx context.Context, route navsearch.Route) (err error) {
	defer func(begin time.Time) {
		n.logger.Info("navigate",
			"route", route.Hash(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Navigate(ctx, route)
}
