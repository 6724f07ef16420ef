package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/navsearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ navsearch.SnapshotService = (*SnapshotService)(nil)
	_ navsearch.IndexBuilder    = (*SnapshotService)(nil)
)

// SnapshotService implements navsearch.SnapshotService using SQLite.
// It also serves the latest snapshot as a navsearch.IndexBuilder.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// HashEntries computes the xxHash of the entries' JSON encoding as a
// 16-character hex string. Equal index sequences hash equally.
func HashEntries(entries []navsearch.IndexEntry) (string, error) {
	d := xxhash.New()
	if err := json.NewEncoder(d).Encode(entries); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", d.Sum64()), nil
}

// CreateSnapshot stores entries as a new snapshot. If the latest snapshot
// has the same content hash, it is returned and nothing is written.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, entries []navsearch.IndexEntry) (*navsearch.Snapshot, error) {
	snap := &navsearch.Snapshot{Entries: entries}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	hash, err := HashEntries(entries)
	if err != nil {
		return nil, err
	}

	latest, err := s.findLatestHeader(ctx)
	if err != nil && navsearch.ErrorCode(err) != navsearch.ENOTFOUND {
		return nil, err
	}
	if latest != nil && latest.ContentHash == hash {
		latest.Entries, err = s.findEntries(ctx, latest.ID)
		if err != nil {
			return nil, err
		}
		return latest, nil
	}

	snap.ID = uuid.New().String()
	snap.ContentHash = hash
	snap.EntryCount = len(entries)
	snap.CreatedAt = time.Now().UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, content_hash, entry_count, created_at)
		VALUES (?, ?, ?, ?)
	`, snap.ID, snap.ContentHash, snap.EntryCount, snap.CreatedAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO snapshot_entries (snapshot_id, position, type, entry_id, title, category, section, page, url, anchor, content, title_lower, is_header, is_subsection)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx, snap.ID, i, string(e.Type), e.ID, e.Title, e.Category, e.Section,
			e.Page, e.URL, e.Anchor, e.Content, e.TitleLower, e.IsHeader, e.IsSubSection); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return snap, nil
}

// FindLatestSnapshot returns the most recently created snapshot with its
// entries in index order.
func (s *SnapshotService) FindLatestSnapshot(ctx context.Context) (*navsearch.Snapshot, error) {
	snap, err := s.findLatestHeader(ctx)
	if err != nil {
		return nil, err
	}
	snap.Entries, err = s.findEntries(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// FindSnapshots retrieves snapshot headers matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter navsearch.SnapshotFilter) ([]*navsearch.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, content_hash, entry_count, created_at FROM snapshots WHERE 1=1")
	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	query.WriteString(" ORDER BY rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []*navsearch.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snaps, nil
}

// DeleteSnapshot permanently removes a snapshot and its entries.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return navsearch.Errorf(navsearch.ENOTFOUND, "snapshot not found")
	}
	return nil
}

// BuildIndex returns the entries of the latest snapshot, so a stored index
// can be searched without fetching the site.
func (s *SnapshotService) BuildIndex(ctx context.Context) ([]navsearch.IndexEntry, error) {
	snap, err := s.FindLatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Entries, nil
}

func (s *SnapshotService) findLatestHeader(ctx context.Context) (*navsearch.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash, entry_count, created_at
		FROM snapshots
		ORDER BY rowid DESC
		LIMIT 1
	`)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, navsearch.Errorf(navsearch.ENOTFOUND, "no snapshot found")
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *SnapshotService) findEntries(ctx context.Context, snapshotID string) ([]navsearch.IndexEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, entry_id, title, category, section, page, url, anchor, content, title_lower, is_header, is_subsection
		FROM snapshot_entries
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []navsearch.IndexEntry
	for rows.Next() {
		var e navsearch.IndexEntry
		var typ string
		if err := rows.Scan(&typ, &e.ID, &e.Title, &e.Category, &e.Section, &e.Page, &e.URL,
			&e.Anchor, &e.Content, &e.TitleLower, &e.IsHeader, &e.IsSubSection); err != nil {
			return nil, err
		}
		e.Type = navsearch.EntryType(typ)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*navsearch.Snapshot, error) {
	var snap navsearch.Snapshot
	var createdAt string
	if err := row.Scan(&snap.ID, &snap.ContentHash, &snap.EntryCount, &createdAt); err != nil {
		return nil, err
	}

	var err error
	snap.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &snap, nil
}

// appendPagination adds LIMIT and OFFSET clauses for positive values.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
