package resolve

import (
	"strings"
	"unicode"
)

// Normalize lowercases, trims and replaces every character that is not a
// letter, digit or whitespace with a space. Letters from any script are kept,
// so Hebrew aliases survive normalization.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.TrimSpace(b.String())
}
