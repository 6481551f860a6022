package cads

import (
	"bytes"
	"sort"
	"sync"
)

// Solution is a candidate expression that reproduced every expected
// checksum in the dataset it was evaluated against.
type Solution struct {
	FieldIndices []uint8    `json:"field_indices"`
	Operations   []Operator `json:"operations"`
	Constant     uint64     `json:"constant"`
	ChecksumSize int        `json:"checksum_size"`
	Validated    bool       `json:"validated"`
}

// key returns the six-tuple sort/dedup key as a comparable value
// suitable for a map key.
func (s Solution) key() string {
	var buf bytes.Buffer
	buf.WriteByte(byte(len(s.FieldIndices)))
	buf.WriteByte(byte(len(s.Operations)))
	buf.Write(s.FieldIndices)
	for _, op := range s.Operations {
		buf.WriteByte(byte(op))
	}
	for i := 0; i < 8; i++ {
		buf.WriteByte(byte(s.Constant >> (8 * uint(i))))
	}
	buf.WriteByte(byte(s.ChecksumSize))
	return buf.String()
}

// ResultsStore is the thread-safe append-only solution collector.
// Appends are protected by a single mutex, which is fine here because
// each append is cheap relative to the enumeration work that produces
// it; see the open question decisions in DESIGN.md for why this was
// chosen over a per-worker-then-merge strategy.
type ResultsStore struct {
	mu        sync.Mutex
	solutions []Solution
}

// NewResultsStore creates an empty store.
func NewResultsStore() *ResultsStore {
	return &ResultsStore{}
}

// Add appends a solution. Safe for concurrent use.
func (r *ResultsStore) Add(s Solution) {
	r.mu.Lock()
	r.solutions = append(r.solutions, s)
	r.mu.Unlock()
}

// Merge appends a batch of solutions, e.g. a worker's local vector at
// join time.
func (r *ResultsStore) Merge(batch []Solution) {
	if len(batch) == 0 {
		return
	}
	r.mu.Lock()
	r.solutions = append(r.solutions, batch...)
	r.mu.Unlock()
}

// Len returns the current (pre-sort) count of appended solutions. Safe
// for concurrent use; used by early-exit cancellation checks.
func (r *ResultsStore) Len() int {
	r.mu.Lock()
	n := len(r.solutions)
	r.mu.Unlock()
	return n
}

// compareSolutions implements the total order:
// field_count, operation_count, field_indices, operations, constant,
// checksum_size, all ascending.
func compareSolutions(a, b Solution) int {
	if len(a.FieldIndices) != len(b.FieldIndices) {
		return len(a.FieldIndices) - len(b.FieldIndices)
	}
	if len(a.Operations) != len(b.Operations) {
		return len(a.Operations) - len(b.Operations)
	}
	for i := range a.FieldIndices {
		if a.FieldIndices[i] != b.FieldIndices[i] {
			return int(a.FieldIndices[i]) - int(b.FieldIndices[i])
		}
	}
	for i := range a.Operations {
		if a.Operations[i] != b.Operations[i] {
			return int(a.Operations[i]) - int(b.Operations[i])
		}
	}
	if a.Constant != b.Constant {
		if a.Constant < b.Constant {
			return -1
		}
		return 1
	}
	return a.ChecksumSize - b.ChecksumSize
}

// Finish applies the final deterministic ordering (§4.7): dedup by the
// six-key equality, sort, then re-verify every retained solution against
// the dataset before returning it.
func (r *ResultsStore) Finish(dataset *Dataset) []Solution {
	r.mu.Lock()
	all := make([]Solution, len(r.solutions))
	copy(all, r.solutions)
	r.mu.Unlock()

	seen := make(map[string]bool, len(all))
	deduped := make([]Solution, 0, len(all))
	for _, s := range all {
		k := s.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, s)
	}

	sort.Slice(deduped, func(i, j int) bool {
		return compareSolutions(deduped[i], deduped[j]) < 0
	})

	for i := range deduped {
		deduped[i].Validated = Evaluate(
			fieldIndicesToInts(deduped[i].FieldIndices),
			deduped[i].Operations,
			deduped[i].Constant,
			dataset,
			deduped[i].ChecksumSize,
			nil,
		)
	}

	return deduped
}

func fieldIndicesToInts(fi []uint8) []int {
	out := make([]int, len(fi))
	for i, v := range fi {
		out[i] = int(v)
	}
	return out
}
