package etl

import (
	"strings"
	"unicode"
)

// missingValues are cell texts treated as absent, compared case-insensitively.
var missingValues = map[string]bool{
	"nan":  true,
	"null": true,
	"none": true,
	"na":   true,
	"n/a":  true,
	"<na>": true,
	"#n/a": true,
}

// IsMissing reports whether a trimmed cell is empty or a missing-value marker.
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || missingValues[strings.ToLower(s)]
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
