// Package search provides text folding for accent- and case-insensitive matching.
package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Fold lowercases a string and strips diacritics, so "Éowyn" and "eowyn"
// compare equal.
// "Gabriel García Márquez" -> "gabriel garcia marquez".
func Fold(s string) string {
	// Decompose accented characters into base rune + combining marks.
	s = norm.NFKD.String(s)

	// Drop the combining marks.
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Mn, r) {
			return -1
		}
		return r
	}, s)

	return strings.ToLower(s)
}

// Contains reports whether needle occurs in haystack after folding both.
func Contains(haystack, needle string) bool {
	return strings.Contains(Fold(haystack), Fold(needle))
}
