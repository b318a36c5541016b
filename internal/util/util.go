// Package util provides small normalization helpers shared by the record parsers.
package util

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// StripWhitespace removes every whitespace rune from a string. Vicon labels
// sometimes carry stray spaces ("Sub Frame", "Patient 1:poignet_D_X"), so
// matching is always done on the stripped form.
func StripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// SanitizeUTF8 converts raw file bytes to a string, substituting the Unicode
// replacement character for invalid sequences instead of failing.
func SanitizeUTF8(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}

// ParseSample parses a single data cell into a float64. Empty cells and cells
// that do not parse as numbers become NaN rather than errors; a gap in a
// trajectory is expected data, not a malformed file.
func ParseSample(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
