package sqlite_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/navsearch"
	"github.com/fwojciec/navsearch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []navsearch.IndexEntry {
	return []navsearch.IndexEntry{
		{Type: navsearch.EntryPage, ID: "install", Title: "Install", TitleLower: "install", Category: "guides", Section: "Getting Started", Page: "guides/install.md", URL: "install", IsHeader: true, Content: "run the installer."},
		{Type: navsearch.EntryPage, ID: "install", Title: "Requirements", TitleLower: "requirements", Category: "guides", Section: "Getting Started", Page: "guides/install.md", URL: "install", Anchor: "requirements", IsSubSection: true, Content: "go 1.25."},
		{Type: navsearch.EntryPage, ID: "deploy", Title: "Deploy", TitleLower: "deploy", Category: "ops", Section: "Running", Page: "ops/deploy.md", URL: "deploy", IsHeader: true},
	}
}

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("stores snapshot with generated ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)

		snap, err := svc.CreateSnapshot(context.Background(), testEntries())

		require.NoError(t, err)
		assert.NotEmpty(t, snap.ID, "ID should be generated")
		assert.Len(t, snap.ContentHash, 16)
		assert.Equal(t, 3, snap.EntryCount)
		assert.False(t, snap.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("rejects empty entries", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)

		_, err := svc.CreateSnapshot(context.Background(), nil)

		require.Error(t, err)
		assert.Equal(t, navsearch.EINVALID, navsearch.ErrorCode(err))
	})

	t.Run("reuses latest snapshot for identical content", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		first, err := svc.CreateSnapshot(ctx, testEntries())
		require.NoError(t, err)
		second, err := svc.CreateSnapshot(ctx, testEntries())
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		snaps, err := svc.FindSnapshots(ctx, navsearch.SnapshotFilter{})
		require.NoError(t, err)
		assert.Len(t, snaps, 1)
	})

	t.Run("stores a new snapshot when content changes", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		first, err := svc.CreateSnapshot(ctx, testEntries())
		require.NoError(t, err)
		changed := testEntries()
		changed[2].Content = "ship it."
		second, err := svc.CreateSnapshot(ctx, changed)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.NotEqual(t, first.ContentHash, second.ContentHash)
	})
}

func TestSnapshotService_FindLatestSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("returns not found when empty", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)

		_, err := svc.FindLatestSnapshot(context.Background())

		require.Error(t, err)
		assert.Equal(t, navsearch.ENOTFOUND, navsearch.ErrorCode(err))
	})

	t.Run("round-trips entries in index order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		created, err := svc.CreateSnapshot(ctx, testEntries())
		require.NoError(t, err)

		snap, err := svc.FindLatestSnapshot(ctx)

		require.NoError(t, err)
		assert.Equal(t, created.ID, snap.ID)
		assert.True(t, created.CreatedAt.Equal(snap.CreatedAt))
		assert.Equal(t, testEntries(), snap.Entries)
	})

	t.Run("returns the most recent snapshot", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		_, err := svc.CreateSnapshot(ctx, testEntries())
		require.NoError(t, err)
		newer := testEntries()[:1]
		created, err := svc.CreateSnapshot(ctx, newer)
		require.NoError(t, err)

		snap, err := svc.FindLatestSnapshot(ctx)

		require.NoError(t, err)
		assert.Equal(t, created.ID, snap.ID)
		assert.Len(t, snap.Entries, 1)
	})
}

func TestSnapshotService_FindSnapshots(t *testing.T) {
	t.Parallel()

	t.Run("lists newest first with pagination", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		var ids []string
		for i := range 3 {
			entries := testEntries()
			entries[0].Content = fmt.Sprintf("revision %d", i)
			snap, err := svc.CreateSnapshot(ctx, entries)
			require.NoError(t, err)
			ids = append(ids, snap.ID)
		}

		snaps, err := svc.FindSnapshots(ctx, navsearch.SnapshotFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, snaps, 2)
		assert.Equal(t, ids[2], snaps[0].ID)
		assert.Equal(t, ids[1], snaps[1].ID)
		assert.Nil(t, snaps[0].Entries)

		snaps, err = svc.FindSnapshots(ctx, navsearch.SnapshotFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, snaps, 1)
		assert.Equal(t, ids[0], snaps[0].ID)
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		created, err := svc.CreateSnapshot(ctx, testEntries())
		require.NoError(t, err)

		snaps, err := svc.FindSnapshots(ctx, navsearch.SnapshotFilter{ID: &created.ID})
		require.NoError(t, err)
		require.Len(t, snaps, 1)
		assert.Equal(t, 3, snaps[0].EntryCount)
	})
}

func TestSnapshotService_DeleteSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("removes snapshot and its entries", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		snap, err := svc.CreateSnapshot(ctx, testEntries())
		require.NoError(t, err)

		require.NoError(t, svc.DeleteSnapshot(ctx, snap.ID))

		_, err = svc.FindLatestSnapshot(ctx)
		assert.Equal(t, navsearch.ENOTFOUND, navsearch.ErrorCode(err))
		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshot_entries").Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("returns not found for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)

		err := svc.DeleteSnapshot(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, navsearch.ENOTFOUND, navsearch.ErrorCode(err))
	})
}

func TestSnapshotService_BuildIndex(t *testing.T) {
	t.Parallel()

	t.Run("serves the latest snapshot as an index", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()
		_, err := svc.CreateSnapshot(ctx, testEntries())
		require.NoError(t, err)

		entries, err := svc.BuildIndex(ctx)

		require.NoError(t, err)
		results := navsearch.Rank("requirements", entries, 0)
		require.Len(t, results, 1)
		assert.Equal(t, "requirements", results[0].Anchor)
	})

	t.Run("fails when nothing is stored", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)

		_, err := svc.BuildIndex(context.Background())

		assert.Equal(t, navsearch.ENOTFOUND, navsearch.ErrorCode(err))
	})
}

func TestHashEntries(t *testing.T) {
	t.Parallel()

	a, err := sqlite.HashEntries(testEntries())
	require.NoError(t, err)
	b, err := sqlite.HashEntries(testEntries())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	reordered := testEntries()
	reordered[0], reordered[2] = reordered[2], reordered[0]
	c, err := sqlite.HashEntries(reordered)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
