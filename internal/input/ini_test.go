package input

import (
	"strings"
	"testing"

	"github.com/twilightcoders/cads/internal/cads"
)

func TestLoadINIDefaultsWithoutConfigSection(t *testing.T) {
	data := `[packets]
9c300100 31 frame one
`
	lc, err := LoadINI(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadINI: %v", err)
	}
	if lc.Config.Complexity != cads.ComplexityIntermediate {
		t.Errorf("expected default complexity intermediate, got %v", lc.Config.Complexity)
	}
	if len(lc.Packets) != 1 {
		t.Fatalf("expected 1 inline packet, got %d", len(lc.Packets))
	}
	if lc.Packets[0].Description != "frame one" {
		t.Errorf("unexpected description %q", lc.Packets[0].Description)
	}
}

func TestLoadINIFullConfigSection(t *testing.T) {
	data := `[config]
name=test-run
complexity=advanced
max_fields=6
max_constants=32
checksum_size=2
early_exit=true
max_solutions=1
progress_interval=100
verbose=true
threads=4
operations=xor, add

[packets]
aabbccdd 1234 sample
`
	lc, err := LoadINI(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadINI: %v", err)
	}
	if lc.Name != "test-run" {
		t.Errorf("expected name test-run, got %q", lc.Name)
	}
	if lc.Config.Complexity != cads.ComplexityAdvanced {
		t.Errorf("expected complexity advanced, got %v", lc.Config.Complexity)
	}
	if lc.Config.MaxFields != 6 || lc.Config.MaxConstants != 32 || lc.Config.ChecksumSize != 2 {
		t.Errorf("unexpected numeric config fields: %+v", lc.Config)
	}
	if !lc.Config.EarlyExit || !lc.Config.Verbose {
		t.Error("expected early_exit and verbose both true")
	}
	if lc.Config.Threads != 4 {
		t.Errorf("expected threads=4, got %d", lc.Config.Threads)
	}
	if len(lc.Config.CustomOperations) != 2 || lc.Config.CustomOperations[0] != cads.OpXor || lc.Config.CustomOperations[1] != cads.OpAdd {
		t.Errorf("unexpected custom operations: %v", lc.Config.CustomOperations)
	}
	if lc.Packets[0].ExpectedChecksum != 0x1234 {
		t.Errorf("expected checksum 0x1234 at checksum_size=2, got 0x%x", lc.Packets[0].ExpectedChecksum)
	}
}

func TestLoadINIUnknownOperationErrors(t *testing.T) {
	data := `[config]
operations=not_a_real_op
`
	if _, err := LoadINI(strings.NewReader(data)); err == nil {
		t.Fatal("expected error for unknown operator name")
	}
}
