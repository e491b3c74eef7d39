// Package textnorm folds user and reference text for accent and case
// insensitive comparison.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripMarks applies compatibility decomposition (NFKD) and removes combining marks.
func StripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold strips marks, upper-cases and collapses runs of whitespace.
// "  San   José " and "SAN JOSE" fold to the same value.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(StripMarks(s))), " ")
}

// Digits returns only the ASCII digits of s after compatibility decomposition.
func Digits(s string) string {
	s = StripMarks(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
