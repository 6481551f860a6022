package cads

// FieldCache is an optional precomputed extraction table: for every
// packet and every field index up to min_packet_len, the extracted
// checksum_size-byte value is computed once up front so the evaluator's
// inner loop can do an array read instead of re-slicing packet bytes.
// Read-only during a search; callers may skip building it entirely.
type FieldCache struct {
	checksumSize int
	width        int
	values       [][]uint64 // values[packetIdx][fieldIdx]
}

// BuildFieldCache precomputes extract(packet.Bytes, i, checksumSize) for
// every packet and every i in 0..dataset.MinPacketLen().
func BuildFieldCache(dataset *Dataset, checksumSize int) *FieldCache {
	width := dataset.MinPacketLen()
	values := make([][]uint64, len(dataset.Packets))
	for p := range dataset.Packets {
		row := make([]uint64, width)
		for i := 0; i < width; i++ {
			row[i] = extract(dataset.Packets[p].Bytes, i, checksumSize)
		}
		values[p] = row
	}
	return &FieldCache{checksumSize: checksumSize, width: width, values: values}
}

// Get returns the cached extraction for packet p, field index i.
func (c *FieldCache) Get(p, i int) uint64 {
	return c.values[p][i]
}

// Clear releases the cache's backing storage.
func (c *FieldCache) Clear() {
	c.values = nil
}
