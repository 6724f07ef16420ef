package main

import (
	"fmt"

	"github.com/fwojciec/navsearch"
)

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	if deps.Builder == nil {
		fmt.Fprintln(deps.Stderr, "error: set --base-url or --dir to choose a documentation site")
		return navsearch.Errorf(navsearch.EINVALID, "no documentation site configured")
	}

	entries, err := deps.Builder.BuildIndex(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describeError(err))
		return err
	}

	pages, categories := countPages(entries)
	fmt.Fprintf(deps.Stdout, "Indexed %d entries from %d pages in %d categories\n", len(entries), pages, categories)

	if deps.Snapshots == nil {
		return nil
	}
	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "Index is empty; no snapshot stored")
		return nil
	}

	snap, err := deps.Snapshots.CreateSnapshot(deps.Ctx, entries)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describeError(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Snapshot %s (%s)\n", snap.ID, snap.ContentHash)
	return nil
}

// countPages counts page entries and the distinct categories they belong to.
func countPages(entries []navsearch.IndexEntry) (pages, categories int) {
	seen := make(map[string]bool)
	for _, e := range entries {
		if !e.IsHeader {
			continue
		}
		pages++
		if !seen[e.Category] {
			seen[e.Category] = true
			categories++
		}
	}
	return pages, categories
}

// describeError returns a message for the user. Application errors show
// their message; other errors are shown as is.
func describeError(err error) string {
	if navsearch.ErrorCode(err) == navsearch.EINTERNAL {
		return err.Error()
	}
	return navsearch.ErrorMessage(err)
}
