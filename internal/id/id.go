package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Format returns a record ID zero-padded to width digits, e.g. Format(3, 3) = "003".
// IDs wider than width are returned unpadded.
func Format(id int64, width int) string {
	return fmt.Sprintf("%0*d", width, id)
}

// Parse parses a record ID as typed on the command line ("3", "003", "#3").
func Parse(s string) (int64, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if raw == "" {
		return 0, fmt.Errorf("empty ID")
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid ID %q: must be positive", s)
	}
	return n, nil
}
