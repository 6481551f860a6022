// Package input parses the two on-disk formats the CLI accepts: a JSONL
// packet corpus and an INI-style run configuration.
package input

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/twilightcoders/cads/internal/cads"
)

type jsonlRecord struct {
	Packet      string `json:"packet"`
	Checksum    string `json:"checksum"`
	Description string `json:"description"`
}

// LoadJSONL reads a newline-delimited JSON packet corpus, one object per
// line, masking each decoded checksum to checksumSize bytes.
// Blank lines and lines starting with "#" or "/" are skipped. A line
// missing packet or checksum is skipped with a warning logged; a file
// yielding zero packets is an error.
func LoadJSONL(r io.Reader, checksumSize int) ([]cads.Packet, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var packets []cads.Packet
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "/") {
			continue
		}

		var rec jsonlRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Printf("input: line %d: invalid JSON, skipping: %v", lineNo, err)
			continue
		}
		if rec.Packet == "" || rec.Checksum == "" {
			log.Printf("input: line %d: missing packet or checksum, skipping", lineNo)
			continue
		}

		bytes, err := hex.DecodeString(rec.Packet)
		if err != nil {
			log.Printf("input: line %d: invalid packet hex, skipping: %v", lineNo, err)
			continue
		}
		checksumBytes, err := hex.DecodeString(rec.Checksum)
		if err != nil {
			log.Printf("input: line %d: invalid checksum hex, skipping: %v", lineNo, err)
			continue
		}

		var checksum uint64
		for _, b := range checksumBytes {
			checksum = (checksum << 8) | uint64(b)
		}
		checksum = maskChecksum(checksum, checksumSize)

		desc := rec.Description
		if desc == "" {
			desc = fmt.Sprintf("Packet_%d", lineNo)
		}

		packets = append(packets, cads.Packet{
			Bytes:            bytes,
			ExpectedChecksum: checksum,
			ChecksumSize:     checksumSize,
			Description:      desc,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading jsonl input: %w", err)
	}
	if len(packets) == 0 {
		return nil, fmt.Errorf("jsonl input yielded zero packets")
	}
	return packets, nil
}

func maskChecksum(v uint64, size int) uint64 {
	if size >= 8 {
		return v
	}
	return v & ((uint64(1) << (8 * uint(size))) - 1)
}
