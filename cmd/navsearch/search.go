package main

import (
	"fmt"

	"github.com/fwojciec/navsearch"
	"github.com/fwojciec/navsearch/indexer"
	"github.com/fwojciec/navsearch/palette"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	builder, err := selectBuilder(deps, c.Offline)
	if err != nil {
		return err
	}

	idx := indexer.NewIndex(builder,
		indexer.WithMaxResults(c.Limit),
		indexer.WithIndexLogger(deps.Logger),
	)
	defer idx.Close()

	if err := idx.Build(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describeError(err))
		return err
	}

	results := idx.Search(c.Query)
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, palette.NoResultsMessage)
		return nil
	}

	fmt.Fprintln(deps.Stdout, navsearch.FormatEntries(results, c.Query))
	return nil
}

// selectBuilder returns the snapshot store when offline and the site builder
// otherwise.
func selectBuilder(deps *Dependencies, offline bool) (navsearch.IndexBuilder, error) {
	if offline {
		if deps.Stored == nil {
			fmt.Fprintln(deps.Stderr, "error: --offline requires --db")
			return nil, navsearch.Errorf(navsearch.EINVALID, "--offline requires --db")
		}
		return deps.Stored, nil
	}
	if deps.Builder == nil {
		fmt.Fprintln(deps.Stderr, "error: set --base-url or --dir to choose a documentation site")
		return nil, navsearch.Errorf(navsearch.EINVALID, "no documentation site configured")
	}
	return deps.Builder, nil
}
