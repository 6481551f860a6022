package cads

import "fmt"

// Config holds the read-only search parameters for one run_search call.
type Config struct {
	Complexity         Complexity
	CustomOperations   []Operator // nil => derive from Complexity
	MaxFields          int
	MaxConstants       int
	ChecksumSize       int
	EarlyExit          bool
	MaxSolutions       uint32 // 0 = unlimited
	Threads            int    // 0 = auto (logical cores)
	ProgressIntervalMs int
	Verbose            bool
}

// DefaultConfig returns the documented INI/CLI defaults.
func DefaultConfig() Config {
	return Config{
		Complexity:         ComplexityIntermediate,
		MaxFields:          4,
		MaxConstants:       128,
		ChecksumSize:       1,
		EarlyExit:          false,
		MaxSolutions:       0,
		Threads:            1,
		ProgressIntervalMs: 250,
		Verbose:            false,
	}
}

// Validate checks hard invariants and returns an error for anything that
// is not a silently-clamped configuration incoherence.
func (c *Config) Validate() error {
	if c.ChecksumSize < 1 || c.ChecksumSize > 8 {
		return fmt.Errorf("checksum_size must be in 1..=8, got %d", c.ChecksumSize)
	}
	if c.MaxFields < 1 || c.MaxFields > 16 {
		return fmt.Errorf("max_fields must be in 1..=16, got %d", c.MaxFields)
	}
	if c.MaxConstants < 1 || c.MaxConstants > 256 {
		return fmt.Errorf("max_constants must be in 1..=256, got %d", c.MaxConstants)
	}
	return nil
}

// ClampToDataset silently clamps max_fields down to min_packet_len, in
// place, when the configured value exceeds what the dataset can support.
func (c *Config) ClampToDataset(d *Dataset) {
	if c.MaxFields > d.MinPacketLen() {
		c.MaxFields = d.MinPacketLen()
	}
}
