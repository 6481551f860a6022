package cads

import "testing"

func TestMaskCorrectness(t *testing.T) {
	// mask(v,s) = v & ((1<<(8*s))-1), s=8 -> v.
	cases := []struct {
		v    uint64
		size int
		want uint64
	}{
		{0x1234, 1, 0x34},
		{0x1234, 2, 0x1234},
		{0xFFFFFFFFFFFFFFFF, 8, 0xFFFFFFFFFFFFFFFF},
		{0x0102030405060708, 4, 0x05060708},
	}
	for _, c := range cases {
		if got := mask(c.v, c.size); got != c.want {
			t.Errorf("mask(0x%x, %d) = 0x%x, want 0x%x", c.v, c.size, got, c.want)
		}
	}
}

func TestExtractCorrectness(t *testing.T) {
	// big-endian pack, no padding if fewer bytes remain.
	data := []byte{0x01, 0x02, 0x03, 0x04}
	if got := extract(data, 0, 2); got != 0x0102 {
		t.Errorf("extract(data,0,2) = 0x%x, want 0x0102", got)
	}
	if got := extract(data, 2, 2); got != 0x0304 {
		t.Errorf("extract(data,2,2) = 0x%x, want 0x0304", got)
	}
	if got := extract(data, 3, 4); got != 0x04 {
		t.Errorf("extract(data,3,4) (short read) = 0x%x, want 0x04", got)
	}
	if got := extract(data, 4, 2); got != 0 {
		t.Errorf("extract at end of data = 0x%x, want 0", got)
	}
}

func TestNewDatasetValidation(t *testing.T) {
	if _, err := NewDataset(nil); err == nil {
		t.Fatal("expected error for empty dataset")
	}
	if _, err := NewDataset([]Packet{{Bytes: nil}}); err == nil {
		t.Fatal("expected error for zero-length packet bytes")
	}
	d, err := NewDataset([]Packet{
		{Bytes: []byte{1, 2, 3}},
		{Bytes: []byte{1, 2}},
		{Bytes: []byte{1, 2, 3, 4}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.MinPacketLen() != 2 {
		t.Fatalf("expected min packet len 2, got %d", d.MinPacketLen())
	}
}
