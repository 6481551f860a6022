// Package warehouse persists finished search runs. It is entirely
// optional: the core search never depends on it, and a run with no
// --warehouse-dsn flag never touches this package.
package warehouse

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/twilightcoders/cads/internal/cads"
)

// RunRecord is the persisted summary of one completed search.
// It is written exactly once, after RunSearch returns; there is no
// mid-search persisted state.
type RunRecord struct {
	ID                 string
	StartedAt          time.Time
	FinishedAt         time.Time
	ConfigJSON         string
	DatasetFingerprint uint64
	SolutionsJSON      string
	TestsPerformed     uint64
	ThreadsUsed        int
}

// Store is implemented by each backend (sqlite, postgres, clickhouse).
// Put takes a context as its first argument; Close takes none.
type Store interface {
	Put(ctx context.Context, rec RunRecord) error
	Close() error
}

// Fingerprint computes the FNV-1a hash of a dataset's packet bytes and
// expected checksums, used as RunRecord.DatasetFingerprint.
func Fingerprint(d *cads.Dataset) uint64 {
	h := fnv.New64a()
	for _, p := range d.Packets {
		h.Write(p.Bytes)
		var buf [8]byte
		for i := 0; i < 8; i++ {
			buf[i] = byte(p.ExpectedChecksum >> (8 * uint(7-i)))
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}

// BuildRecord assembles a RunRecord from a completed search.
func BuildRecord(id string, started, finished time.Time, cfg cads.Config, dataset *cads.Dataset, set *cads.SolutionSet) (RunRecord, error) {
	cfgBytes, err := json.Marshal(cfg)
	if err != nil {
		return RunRecord{}, fmt.Errorf("marshaling config: %w", err)
	}
	solBytes, err := json.Marshal(set.Solutions)
	if err != nil {
		return RunRecord{}, fmt.Errorf("marshaling solutions: %w", err)
	}
	return RunRecord{
		ID:                 id,
		StartedAt:          started,
		FinishedAt:         finished,
		ConfigJSON:         string(cfgBytes),
		DatasetFingerprint: Fingerprint(dataset),
		SolutionsJSON:      string(solBytes),
		TestsPerformed:     set.TestsPerformed,
		ThreadsUsed:        set.ThreadsUsed,
	}, nil
}

// Open resolves a --warehouse-dsn value to a concrete Store by scheme:
// sqlite:<path>, postgres://..., clickhouse://...
func Open(ctx context.Context, dsn string) (Store, error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return OpenSQLite(ctx, strings.TrimPrefix(dsn, "sqlite:"))
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return OpenPostgres(ctx, dsn)
	case strings.HasPrefix(dsn, "clickhouse://"):
		return OpenClickHouse(ctx, dsn)
	default:
		return nil, fmt.Errorf("warehouse: unrecognized dsn scheme in %q", dsn)
	}
}
