// Package indexer builds the search index from a documentation site and owns
// its lifecycle. It coordinates registry loading, category manifest
// aggregation, batched page fetching and section splitting.
//
// Index.Start is the fail-soft entry point: a failed background build is
// logged and the index stays empty, so searches return nothing. Index.Build
// is the strict one: it returns registry failures to its caller, leaving the
// index Idle so the build can be retried. Manifest and page failures never
// reach either caller.
package indexer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/navsearch"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the number of pages fetched concurrently.
const DefaultBatchSize = 5

// Ensure Builder implements navsearch.IndexBuilder at compile time.
var _ navsearch.IndexBuilder = (*Builder)(nil)

// Builder turns a Source into a flat, ordered index.
type Builder struct {
	source    navsearch.Source
	batchSize int
	logger    *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithBatchSize sets how many pages are fetched concurrently.
// Batches run one after another. Defaults to DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.batchSize = n
		}
	}
}

// WithLogger sets the logger used for dropped documents and build summaries.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a new Builder reading from source.
func NewBuilder(source navsearch.Source, opts ...Option) *Builder {
	b := &Builder{
		source:    source,
		batchSize: DefaultBatchSize,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Category is a registry category together with its loaded manifest.
type Category struct {
	*navsearch.Category
	Manifest *navsearch.Manifest
}

// Result holds the outcome of a build.
type Result struct {
	Entries          []navsearch.IndexEntry
	Categories       []Category
	Pages            int
	FailedCategories int
	FailedPages      int
	Duration         time.Duration
}

// BuildIndex builds the index and returns its entries.
func (b *Builder) BuildIndex(ctx context.Context) ([]navsearch.IndexEntry, error) {
	result, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// Build fetches the registry, every category manifest and every page, and
// splits the pages into index entries.
//
// Only a registry failure or context cancellation returns an error. A failed
// manifest drops its category and a failed page drops that page; both are
// logged and the build continues. Entries are ordered by category, section,
// page and heading regardless of fetch completion order.
func (b *Builder) Build(ctx context.Context) (*Result, error) {
	begin := time.Now()

	registry, err := b.source.FetchRegistry(ctx)
	if err != nil {
		b.logger.Warn("search index aborted", "err", err)
		return nil, err
	}
	if registry.Categories == nil {
		b.logger.Warn("search index aborted: no categories found in registry")
		return nil, navsearch.Errorf(navsearch.EINVALID, "registry has no categories")
	}

	result := &Result{}

	result.Categories, result.FailedCategories = b.loadCategories(ctx, registry.Categories)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var refs []navsearch.PageRef
	for _, c := range result.Categories {
		refs = append(refs, navsearch.FlattenManifest(c.ID, c.Manifest)...)
	}
	result.Pages = len(refs)

	result.Entries, result.FailedPages, err = b.fetchPages(ctx, refs)
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(begin)
	b.logger.Info("search index built",
		"entries", len(result.Entries),
		"categories", len(result.Categories),
		"pages", result.Pages-result.FailedPages,
		"duration", result.Duration,
	)

	return result, nil
}

// loadCategories fetches all manifests concurrently. Categories without a
// data file are skipped; failed ones are dropped and counted.
func (b *Builder) loadCategories(ctx context.Context, categories []*navsearch.Category) ([]Category, int) {
	manifests := make([]*navsearch.Manifest, len(categories))
	failed := make([]bool, len(categories))

	var g errgroup.Group
	for i, c := range categories {
		if c == nil || c.DataFile == "" {
			continue
		}
		g.Go(func() error {
			m, err := b.source.FetchManifest(ctx, c.DataFile)
			if err != nil {
				b.logger.Warn("failed to load category data", "category", c.ID, "err", err)
				failed[i] = true
				return nil
			}
			manifests[i] = m
			return nil
		})
	}
	_ = g.Wait()

	var loaded []Category
	var failedCount int
	for i, c := range categories {
		if failed[i] {
			failedCount++
			continue
		}
		if manifests[i] == nil {
			continue
		}
		loaded = append(loaded, Category{Category: c, Manifest: manifests[i]})
	}
	return loaded, failedCount
}

// fetchPages fetches pages in sequential batches of concurrent requests and
// splits each page into entries. Failed pages contribute no entries.
func (b *Builder) fetchPages(ctx context.Context, refs []navsearch.PageRef) ([]navsearch.IndexEntry, int, error) {
	perPage := make([][]navsearch.IndexEntry, len(refs))
	var failed int

	for start := 0; start < len(refs); start += b.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		end := min(start+b.batchSize, len(refs))
		errs := make([]error, end-start)

		var g errgroup.Group
		for i := start; i < end; i++ {
			ref := refs[i]
			g.Go(func() error {
				markdown, err := b.source.FetchPage(ctx, ref.Page)
				if err != nil {
					errs[i-start] = err
					return nil
				}
				perPage[i] = navsearch.SplitSections(markdown, ref)
				return nil
			})
		}
		_ = g.Wait()

		for i, err := range errs {
			if err == nil {
				continue
			}
			failed++
			if !errors.Is(err, context.Canceled) {
				b.logger.Warn("failed to index page", "page", refs[start+i].Page, "err", err)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	var entries []navsearch.IndexEntry
	for _, e := range perPage {
		entries = append(entries, e...)
	}
	return entries, failed, nil
}
