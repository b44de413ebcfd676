// Package normalize folds French text into the lowercase ASCII form used
// for tokens and theme keywords.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ligatures = strings.NewReplacer(
	"œ", "oe", "Œ", "OE",
	"æ", "ae", "Æ", "AE",
	"ß", "ss",
)

// StripAccents removes combining marks after canonical decomposition,
// so "république" becomes "republique".
func StripAccents(s string) string {
	s = ligatures.Replace(s)
	// transform.Chain is stateful: build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold lowercases and strips accents.
func Fold(s string) string {
	return StripAccents(strings.ToLower(s))
}

// ASCIILetters replaces every rune outside [a-z] and whitespace with a
// space. Input is expected to be folded already.
func ASCIILetters(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, s)
}

// Clean applies Fold then ASCIILetters.
func Clean(s string) string {
	return ASCIILetters(Fold(s))
}

// IsAlpha reports whether s is non-empty and made of letters only.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
