// Package textnorm canonicalizes recognized and reference strings before they are compared.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize trims s, collapses every run of whitespace to a single space and
// upper-cases the result with the root (locale-independent) case mapping.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	collapsed := strings.Join(strings.Fields(s), " ")
	// A Caser keeps state between calls, so each call gets its own.
	return cases.Upper(language.Und).String(collapsed)
}

// NormalizePtr is Normalize for optional values; nil maps to the empty string.
func NormalizePtr(s *string) string {
	if s == nil {
		return ""
	}
	return Normalize(*s)
}

// Equal reports whether a and b are identical after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
