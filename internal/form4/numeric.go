package form4

import (
	"regexp"
	"strconv"
)

var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// Normalize parses a loosely formatted numeric string (thousands
// separators, currency symbols, stray footnote markers) into a float.
// It is a total function: empty or unparsable input yields 0.0, never
// an error, because upstream filing data is untrusted and partially
// garbled numbers are common.
func Normalize(raw string) float64 {
	cleaned := nonNumericRe.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0.0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0.0
	}
	return v
}
