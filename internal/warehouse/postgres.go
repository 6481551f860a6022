package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists RunRecords to a PostgreSQL database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool and ensures the runs table exists.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.createSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) createSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS runs (
		id                  TEXT PRIMARY KEY,
		started_at          TIMESTAMPTZ NOT NULL,
		finished_at         TIMESTAMPTZ NOT NULL,
		config              JSONB NOT NULL,
		dataset_fingerprint BIGINT NOT NULL,
		solutions           JSONB NOT NULL,
		tests_performed     BIGINT NOT NULL,
		threads_used        INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Put inserts one finished run record.
func (s *PostgresStore) Put(ctx context.Context, rec RunRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO runs (id, started_at, finished_at, config, dataset_fingerprint, solutions, tests_performed, threads_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.StartedAt, rec.FinishedAt, rec.ConfigJSON,
		int64(rec.DatasetFingerprint), rec.SolutionsJSON,
		int64(rec.TestsPerformed), rec.ThreadsUsed)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
