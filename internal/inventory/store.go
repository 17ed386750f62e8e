package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists scan records and summaries in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the SQLite database at the provided path and
// ensures the schema is available.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS entries (
    location TEXT NOT NULL PRIMARY KEY,
    type TEXT NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    modified TEXT NOT NULL DEFAULT '',
    readable INTEGER NOT NULL DEFAULT 0,
    writable INTEGER NOT NULL DEFAULT 0,
    scanned_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_entries_type ON entries(type);

CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    root TEXT NOT NULL,
    file_count INTEGER NOT NULL,
    total_size INTEGER NOT NULL,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SaveRecords upserts a batch of records in a single transaction.
func (s *Store) SaveRecords(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO entries (location, type, size, modified, readable, writable)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(location) DO UPDATE SET
    type = excluded.type,
    size = excluded.size,
    modified = excluded.modified,
    readable = excluded.readable,
    writable = excluded.writable,
    scanned_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Location, rec.Type, rec.Size, rec.Modified, rec.Readable, rec.Writable); err != nil {
			return fmt.Errorf("upsert %s: %w", rec.Location, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// SaveSummary appends a scan summary row.
func (s *Store) SaveSummary(ctx context.Context, summary Summary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scans (root, file_count, total_size) VALUES (?, ?, ?)`,
		summary.Root, summary.FileCount, summary.TotalSize)
	if err != nil {
		return fmt.Errorf("save summary %s: %w", summary.Root, err)
	}
	return nil
}

// EntriesByType returns the stored records with the given type code,
// ordered by location.
func (s *Store) EntriesByType(ctx context.Context, typeCode string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT location, type, size, modified, readable, writable
FROM entries WHERE type = ? ORDER BY location`, typeCode)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Location, &rec.Type, &rec.Size, &rec.Modified, &rec.Readable, &rec.Writable); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LatestSummary returns the most recent summary for root, or nil if root
// was never scanned.
func (s *Store) LatestSummary(ctx context.Context, root string) (*Summary, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT root, file_count, total_size FROM scans
WHERE root = ? ORDER BY id DESC LIMIT 1`, root)

	var summary Summary
	if err := row.Scan(&summary.Root, &summary.FileCount, &summary.TotalSize); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query summary: %w", err)
	}
	return &summary, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
