package cads

// Evaluate runs one candidate expression — a field permutation plus an
// operator sequence and constant — against every packet in the dataset
// and reports whether it reproduces every expected checksum exactly.
// cache may be nil; when non-nil its precomputed extractions replace the
// inline extract() calls.
func Evaluate(perm []int, ops []Operator, constant uint64, dataset *Dataset, checksumSize int, cache *FieldCache) bool {
	for i := range dataset.Packets {
		if !evaluateOne(perm, ops, constant, i, &dataset.Packets[i], checksumSize, cache) {
			return false
		}
	}
	return true
}

// evaluateOne runs the sequence against a single packet.
func evaluateOne(perm []int, ops []Operator, constant uint64, pktIndex int, pkt *Packet, checksumSize int, cache *FieldCache) bool {
	if pkt.ChecksumSize != checksumSize {
		return false
	}
	for _, idx := range perm {
		if idx >= len(pkt.Bytes) {
			return false
		}
	}

	extractField := func(i int) uint64 {
		if cache != nil {
			return cache.Get(pktIndex, i)
		}
		return extract(pkt.Bytes, i, checksumSize)
	}

	live := extractField(perm[0])
	nextField := 1

sequence:
	for _, op := range ops {
		switch op.Class() {
		case Unary:
			live = op.Apply(live, 0, 0)
		case ConstUsing:
			live = op.Apply(live, 0, constant)
		case Binary:
			if nextField >= len(perm) {
				break sequence
			}
			live = op.Apply(live, extractField(perm[nextField]), 0)
			nextField++
		}
	}

	return mask(live, checksumSize) == mask(pkt.ExpectedChecksum, checksumSize)
}
