package input

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/twilightcoders/cads/internal/cads"
)

// LoadedConfig is the result of parsing an INI-style configuration file:
// the resolved Config plus an optional inline packet corpus from a
// [packets] section.
type LoadedConfig struct {
	Config  cads.Config
	Name    string
	Packets []cads.Packet // nil if the file had no [packets] section
}

// LoadINI parses the two-section INI configuration format: an optional
// [config] section (falling back to DefaultConfig for any field it
// omits) and an optional [packets] section, whose presence makes
// -i/--input unnecessary.
func LoadINI(r io.Reader) (*LoadedConfig, error) {
	cfg := cads.DefaultConfig()
	result := &LoadedConfig{Config: cfg}

	scanner := bufio.NewScanner(r)
	section := ""
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		switch section {
		case "config":
			if err := applyConfigLine(result, line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "packets":
			pkt, err := parsePacketLine(line, lineNo, result.Config.ChecksumSize)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			result.Packets = append(result.Packets, pkt)
		default:
			return nil, fmt.Errorf("line %d: content outside any [section]", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading ini input: %w", err)
	}
	return result, nil
}

func applyConfigLine(result *LoadedConfig, line string) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("malformed config line %q", line)
	}
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)

	switch key {
	case "name":
		result.Name = value
	case "description":
		// descriptive only; not carried onto Config.
	case "complexity":
		c, err := cads.ParseComplexity(value)
		if err != nil {
			return err
		}
		result.Config.Complexity = c
	case "max_fields":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_fields: %w", err)
		}
		result.Config.MaxFields = n
	case "max_constants":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_constants: %w", err)
		}
		result.Config.MaxConstants = n
	case "checksum_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("checksum_size: %w", err)
		}
		result.Config.ChecksumSize = n
	case "early_exit":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("early_exit: %w", err)
		}
		result.Config.EarlyExit = b
	case "max_solutions":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_solutions: %w", err)
		}
		result.Config.MaxSolutions = uint32(n)
	case "progress_interval":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("progress_interval: %w", err)
		}
		result.Config.ProgressIntervalMs = n
	case "verbose":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose: %w", err)
		}
		result.Config.Verbose = b
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("threads: %w", err)
		}
		result.Config.Threads = n
	case "operations":
		names := strings.Split(value, ",")
		ops := make([]cads.Operator, 0, len(names))
		for _, name := range names {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			op, err := cads.ParseOperatorName(name)
			if err != nil {
				return err
			}
			ops = append(ops, op)
		}
		result.Config.CustomOperations = ops
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// parsePacketLine parses one "[packets]" line: <hex-packet> <hex-checksum>
// <description...>, whitespace-separated, description optional.
func parsePacketLine(line string, lineNo, checksumSize int) (cads.Packet, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return cads.Packet{}, fmt.Errorf("expected at least <packet> <checksum>, got %q", line)
	}
	bytes, err := hex.DecodeString(fields[0])
	if err != nil {
		return cads.Packet{}, fmt.Errorf("invalid packet hex: %w", err)
	}
	checksumBytes, err := hex.DecodeString(fields[1])
	if err != nil {
		return cads.Packet{}, fmt.Errorf("invalid checksum hex: %w", err)
	}
	var checksum uint64
	for _, b := range checksumBytes {
		checksum = (checksum << 8) | uint64(b)
	}
	checksum = maskChecksum(checksum, checksumSize)

	desc := fmt.Sprintf("Packet_%d", lineNo)
	if len(fields) > 2 {
		desc = strings.Join(fields[2:], " ")
	}

	return cads.Packet{
		Bytes:            bytes,
		ExpectedChecksum: checksum,
		ChecksumSize:     checksumSize,
		Description:      desc,
	}, nil
}
