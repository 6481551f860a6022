package cads

import "testing"

func TestResultsStoreDedupAndSort(t *testing.T) {
	d, err := NewDataset([]Packet{
		{Bytes: []byte{0x10, 0x20}, ExpectedChecksum: 0x30, ChecksumSize: 1},
	})
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}

	store := NewResultsStore()
	// Two identical solutions (should dedup to one) plus a distinct one.
	store.Add(Solution{FieldIndices: []uint8{0, 1}, Operations: []Operator{OpAdd}, Constant: 0, ChecksumSize: 1})
	store.Add(Solution{FieldIndices: []uint8{0, 1}, Operations: []Operator{OpAdd}, Constant: 0, ChecksumSize: 1})
	store.Add(Solution{FieldIndices: []uint8{0}, Operations: []Operator{OpIdentity}, Constant: 0, ChecksumSize: 1})

	out := store.Finish(d)
	if len(out) != 2 {
		t.Fatalf("expected dedup to 2 solutions, got %d", len(out))
	}
	// lower field_count first.
	if len(out[0].FieldIndices) != 1 || len(out[1].FieldIndices) != 2 {
		t.Fatalf("expected ascending field_count ordering, got %v then %v", out[0].FieldIndices, out[1].FieldIndices)
	}
}

func TestResultsStoreSortIdempotent(t *testing.T) {
	// re-sorting an already-sorted set is a no-op.
	d, err := NewDataset([]Packet{
		{Bytes: []byte{0x01, 0x02, 0x03}, ExpectedChecksum: 0x03, ChecksumSize: 1},
	})
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	store := NewResultsStore()
	store.Add(Solution{FieldIndices: []uint8{2}, Operations: []Operator{OpIdentity}, Constant: 0, ChecksumSize: 1})
	store.Add(Solution{FieldIndices: []uint8{0, 1}, Operations: []Operator{OpXor}, Constant: 0, ChecksumSize: 1})

	first := store.Finish(d)

	store2 := NewResultsStore()
	store2.Merge(first)
	second := store2.Finish(d)

	if len(first) != len(second) {
		t.Fatalf("re-sort changed length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if compareSolutions(first[i], second[i]) != 0 {
			t.Fatalf("re-sort changed order at index %d", i)
		}
	}
}

func TestResultsStoreRevalidation(t *testing.T) {
	// re-validation round trip — a solution genuinely true for the
	// dataset comes back with Validated = true.
	d, err := NewDataset([]Packet{
		{Bytes: []byte{0x01, 0x02, 0x03}, ExpectedChecksum: 0x03, ChecksumSize: 1},
	})
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	store := NewResultsStore()
	store.Add(Solution{FieldIndices: []uint8{2}, Operations: []Operator{OpIdentity}, Constant: 0, ChecksumSize: 1})
	store.Add(Solution{FieldIndices: []uint8{0}, Operations: []Operator{OpIdentity}, Constant: 0, ChecksumSize: 1})

	out := store.Finish(d)
	foundValid, foundInvalid := false, false
	for _, s := range out {
		if s.Validated {
			foundValid = true
		} else {
			foundInvalid = true
		}
	}
	if !foundValid {
		t.Fatal("expected at least one genuinely-true solution to validate")
	}
	if !foundInvalid {
		t.Fatal("expected the bogus solution to fail re-validation")
	}
}
