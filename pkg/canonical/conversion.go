package canonical

import (
	"strconv"
	"strings"
)

// ParseFloat converts a string-encoded number to a float pointer.
// Returns nil on empty or unparsable input. Vendors frequently encode
// monetary amounts as strings with currency symbols or grouping commas;
// those are stripped before parsing.
func ParseFloat(s string) *float64 {
	cleaned := cleanNumeric(s)
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseInt converts a string-encoded number to an int pointer.
// Returns nil on empty or unparsable input. Fractional input is
// truncated toward zero.
func ParseInt(s string) *int {
	f := ParseFloat(s)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}

// Float wraps a literal float in a pointer.
func Float(f float64) *float64 { return &f }

// Int wraps a literal int in a pointer.
func Int(n int) *int { return &n }

// Str wraps a non-empty string in a pointer; empty input yields nil.
func Str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// cleanNumeric strips currency symbols, grouping separators, and
// surrounding whitespace from a vendor-encoded number.
func cleanNumeric(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£ ")
	s = strings.ReplaceAll(s, ",", "")
	return s
}
