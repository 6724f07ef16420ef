package indexer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/navsearch"
	"golang.org/x/sync/singleflight"
)

// DefaultBuildDelay is how long Start waits before building.
const DefaultBuildDelay = time.Second

// Ensure Index implements navsearch.Searcher at compile time.
var _ navsearch.Searcher = (*Index)(nil)

// Index owns a search index and its build lifecycle.
//
// An Index starts Idle. Build moves it to Building and, on success, to Ready.
// A Ready index is never rebuilt or mutated. A failed or cancelled build
// returns it to Idle so that a later Build may retry.
type Index struct {
	builder navsearch.IndexBuilder
	delay   time.Duration
	limit   int
	logger  *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	group  singleflight.Group

	mu      sync.RWMutex
	status  navsearch.IndexStatus
	entries []navsearch.IndexEntry
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithBuildDelay sets how long Start waits before building.
func WithBuildDelay(d time.Duration) IndexOption {
	return func(idx *Index) {
		if d >= 0 {
			idx.delay = d
		}
	}
}

// WithMaxResults caps the number of results Search returns.
func WithMaxResults(n int) IndexOption {
	return func(idx *Index) {
		if n > 0 {
			idx.limit = n
		}
	}
}

// WithIndexLogger sets the logger for background build failures.
func WithIndexLogger(logger *slog.Logger) IndexOption {
	return func(idx *Index) {
		if logger != nil {
			idx.logger = logger
		}
	}
}

// NewIndex returns an idle index that will be populated by builder.
func NewIndex(builder navsearch.IndexBuilder, opts ...IndexOption) *Index {
	idx := &Index{
		builder: builder,
		delay:   DefaultBuildDelay,
		limit:   navsearch.MaxResults,
		logger:  slog.Default(),
		status:  navsearch.IndexIdle,
	}
	for _, opt := range opts {
		opt(idx)
	}
	idx.ctx, idx.cancel = context.WithCancel(context.Background())
	return idx
}

// Start schedules a background build after the configured delay and returns
// immediately. The build is abandoned if ctx is cancelled or the index is
// closed before it completes.
func (idx *Index) Start(ctx context.Context) {
	idx.wg.Add(1)
	go func() {
		defer idx.wg.Done()

		timer := time.NewTimer(idx.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return
		case <-idx.ctx.Done():
			return
		case <-timer.C:
		}

		stop := context.AfterFunc(ctx, idx.cancel)
		defer stop()

		if err := idx.Build(idx.ctx); err != nil {
			idx.logger.Warn("background index build failed", "err", err)
		}
	}()
}

// Build populates the index. Concurrent calls join the single in-flight
// build. Calling Build on a Ready index returns nil immediately.
//
// ctx bounds only the wait; the build itself runs until it completes or the
// index is closed.
func (idx *Index) Build(ctx context.Context) error {
	if idx.Status() == navsearch.IndexReady {
		return nil
	}

	ch := idx.group.DoChan("build", func() (any, error) {
		return nil, idx.build()
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (idx *Index) build() error {
	idx.mu.Lock()
	if idx.status == navsearch.IndexReady {
		idx.mu.Unlock()
		return nil
	}
	if err := idx.ctx.Err(); err != nil {
		idx.mu.Unlock()
		return err
	}
	idx.status = navsearch.IndexBuilding
	idx.mu.Unlock()

	entries, err := idx.builder.BuildIndex(idx.ctx)
	if err == nil {
		err = idx.ctx.Err()
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if err != nil {
		idx.status = navsearch.IndexIdle
		return err
	}
	idx.entries = entries
	idx.status = navsearch.IndexReady
	return nil
}

// Status reports the current lifecycle state.
func (idx *Index) Status() navsearch.IndexStatus {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.status
}

// Ready reports whether the index has been fully built.
func (idx *Index) Ready() bool {
	return idx.Status() == navsearch.IndexReady
}

// Entries returns the built entries in index order, or nil when not ready.
// The returned slice must not be modified.
func (idx *Index) Entries() []navsearch.IndexEntry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if idx.status != navsearch.IndexReady {
		return nil
	}
	return idx.entries
}

// Search ranks the index against query. It returns nil when the index is
// not ready or the query is blank. It never blocks on a build.
func (idx *Index) Search(query string) []navsearch.IndexEntry {
	entries := idx.Entries()
	if entries == nil {
		return nil
	}
	return navsearch.Rank(query, entries, idx.limit)
}

// Close cancels any scheduled or in-flight build and waits for the
// background goroutine started by Start to exit. A Ready index stays
// searchable after Close.
func (idx *Index) Close() error {
	idx.cancel()
	idx.wg.Wait()
	return nil
}
