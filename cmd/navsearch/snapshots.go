package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/navsearch"
)

// Run executes the snapshots command.
func (c *SnapshotsCmd) Run(deps *Dependencies) error {
	if deps.Snapshots == nil {
		fmt.Fprintln(deps.Stderr, "error: set --db to choose a snapshot database")
		return navsearch.Errorf(navsearch.EINVALID, "no snapshot database configured")
	}

	if c.Delete != "" {
		if err := deps.Snapshots.DeleteSnapshot(deps.Ctx, c.Delete); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", describeError(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted snapshot %s\n", c.Delete)
		return nil
	}

	snaps, err := deps.Snapshots.FindSnapshots(deps.Ctx, navsearch.SnapshotFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describeError(err))
		return err
	}

	if len(snaps) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'navsearch index --db' to create one.")
		return nil
	}

	for _, s := range snaps {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d entries  %s\n", s.ID, s.ContentHash, s.EntryCount, s.CreatedAt.Format(time.RFC3339))
	}
	return nil
}
