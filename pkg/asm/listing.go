package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LoadListing reads a textual program listing and returns the
// equivalent little-endian byte stream, ready for Machine.LoadProgram.
//
// The listing format is one instruction word per line, hexadecimal
// with a leading 0x prefix, with an optional "#"-delimited comment
// trailing the number:
//
//	0x08040608   # add r2, rz, #513
//	0x01a00669   # sb  r2, rz, #'h'
//
// Blank lines are skipped. This is meant as a human-editable companion
// to raw binary program images, not as a replacement for them.
func LoadListing(r io.Reader) ([]byte, error) {
	var out []byte
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		word, err := strconv.ParseUint(line, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("asm: listing line %d: %w", lineNo, err)
		}
		w := uint32(word)
		out = append(out, byte(w), byte(w>>8), byte(w>>16), byte(w>>24))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
