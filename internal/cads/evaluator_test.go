package cads

import "testing"

func TestEvaluatorPure(t *testing.T) {
	// evaluating the same sequence twice against the same dataset
	// produces the same result, with no shared mutable state leaking
	// across calls.
	d, err := NewDataset([]Packet{
		{Bytes: []byte{0x01, 0x02}, ExpectedChecksum: 0x03, ChecksumSize: 1},
	})
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	perm := []int{0, 1}
	ops := []Operator{OpAdd}

	r1 := Evaluate(perm, ops, 0, d, 1, nil)
	r2 := Evaluate(perm, ops, 0, d, 1, nil)
	if r1 != r2 || !r1 {
		t.Fatalf("expected stable true result, got %v then %v", r1, r2)
	}
}

func TestEvaluatorMatchesAdd(t *testing.T) {
	d, err := NewDataset([]Packet{
		{Bytes: []byte{0x10, 0x20}, ExpectedChecksum: 0x30, ChecksumSize: 1},
		{Bytes: []byte{0xF0, 0x20}, ExpectedChecksum: 0x10, ChecksumSize: 1}, // wraps mod 256
	})
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	if !Evaluate([]int{0, 1}, []Operator{OpAdd}, 0, d, 1, nil) {
		t.Fatal("expected ADD(p[0],p[1]) to reproduce checksum on both packets")
	}
}

func TestEvaluatorRejectsChecksumSizeMismatch(t *testing.T) {
	d, err := NewDataset([]Packet{
		{Bytes: []byte{0x10, 0x20}, ExpectedChecksum: 0x30, ChecksumSize: 2},
	})
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	if Evaluate([]int{0, 1}, []Operator{OpAdd}, 0, d, 1, nil) {
		t.Fatal("expected false when packet.checksum_size != checksum_size")
	}
}

func TestEvaluatorTrailingUnaryOperator(t *testing.T) {
	// D = perm_len + 1 allows one trailing unary op after the binary
	// consumes all fields.
	d, err := NewDataset([]Packet{
		{Bytes: []byte{0x10, 0x20}, ExpectedChecksum: 0x30, ChecksumSize: 1},
	})
	if err != nil {
		t.Fatalf("NewDataset: %v", err)
	}
	if !Evaluate([]int{0, 1}, []Operator{OpAdd, OpIdentity}, 0, d, 1, nil) {
		t.Fatal("expected ADD followed by trailing IDENTITY to still reproduce checksum")
	}
}
