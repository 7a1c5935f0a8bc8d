package interview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf16"

	"github.com/oklog/ulid/v2"
)

// DefaultOutputDir is where run results land unless overridden.
const DefaultOutputDir = "responses"

// DefaultFilename names a run result when the caller supplies none.
func DefaultFilename() string {
	return "run-" + ulid.Make().String() + ".json"
}

// Save writes the result as pretty-printed, ASCII-escaped JSON and
// returns the path written.
func Save(res *Result, dir, filename string) (string, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if filename == "" {
		filename = DefaultFilename()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, escapeNonASCII(data), 0o644); err != nil {
		return "", fmt.Errorf("write result to %s: %w", path, err)
	}
	return path, nil
}

// escapeNonASCII rewrites every rune above 0x7F as a \uXXXX escape
// (surrogate pairs beyond the BMP), leaving the document plain ASCII.
// Marshaled JSON only holds such runes inside string literals, so the
// rewrite cannot touch structure.
func escapeNonASCII(data []byte) []byte {
	ascii := true
	for _, b := range data {
		if b >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))
	for _, r := range string(data) {
		switch {
		case r < 0x80:
			buf.WriteRune(r)
		case r > 0xFFFF:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&buf, `\u%04x\u%04x`, r1, r2)
		default:
			fmt.Fprintf(&buf, `\u%04x`, r)
		}
	}
	return buf.Bytes()
}
