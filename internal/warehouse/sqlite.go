package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists RunRecords to a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) a SQLite-backed warehouse.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id                   TEXT PRIMARY KEY,
		started_at           TEXT NOT NULL,
		finished_at          TEXT NOT NULL,
		config               TEXT NOT NULL,
		dataset_fingerprint  INTEGER NOT NULL,
		solutions            TEXT NOT NULL,
		tests_performed      INTEGER NOT NULL,
		threads_used         INTEGER NOT NULL
	)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Put inserts one finished run record.
func (s *SQLiteStore) Put(ctx context.Context, rec RunRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, config, dataset_fingerprint, solutions, tests_performed, threads_used)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StartedAt.Format(timeLayout), rec.FinishedAt.Format(timeLayout),
		rec.ConfigJSON, int64(rec.DatasetFingerprint), rec.SolutionsJSON,
		int64(rec.TestsPerformed), rec.ThreadsUsed)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
