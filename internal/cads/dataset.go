package cads

import "fmt"

// Packet is one labeled (bytes, expected checksum) example. Immutable
// once constructed.
type Packet struct {
	Bytes            []byte
	ExpectedChecksum uint64
	ChecksumSize      int
	Description      string
}

// Dataset is an ordered, non-empty collection of packets.
type Dataset struct {
	Packets     []Packet
	minPacketLen int
}

// NewDataset validates and wraps a packet slice.
func NewDataset(packets []Packet) (*Dataset, error) {
	if len(packets) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}
	minLen := len(packets[0].Bytes)
	for i := range packets {
		if len(packets[i].Bytes) == 0 {
			return nil, fmt.Errorf("packet %d has zero-length bytes", i)
		}
		if len(packets[i].Bytes) < minLen {
			minLen = len(packets[i].Bytes)
		}
	}
	return &Dataset{Packets: packets, minPacketLen: minLen}, nil
}

// MinPacketLen returns min(p.Bytes.len()) across the dataset, computed
// once at construction time.
func (d *Dataset) MinPacketLen() int { return d.minPacketLen }

// mask truncates v to the low `size` bytes (size in 1..=8); size==8 is a
// no-op.
func mask(v uint64, size int) uint64 {
	if size >= 8 {
		return v
	}
	return v & ((uint64(1) << (8 * uint(size))) - 1)
}

// extract reads up to `size` bytes from bytes[i:] and packs them
// big-endian into a u64. If fewer than `size` bytes remain, it reads what
// is available with no padding.
func extract(data []byte, i, size int) uint64 {
	end := i + size
	if end > len(data) {
		end = len(data)
	}
	var v uint64
	for _, b := range data[i:end] {
		v = (v << 8) | uint64(b)
	}
	return v
}
