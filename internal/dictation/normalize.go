package dictation

import (
	"strings"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Normalize folds a typed or expected spelling to its comparison form:
// full-width Latin narrowed, NFC composed, trimmed and lowercased.
// The width folding is deliberate: a Chinese IME left in full-width mode
// types ｄｏｇ, which should still match dog.
func Normalize(s string) string {
	s = width.Narrow.String(s)
	s = norm.NFC.String(s)
	return strings.ToLower(strings.TrimSpace(s))
}

// Match reports whether typed spells expected.
func Match(typed, expected string) bool {
	return Normalize(typed) == Normalize(expected)
}
