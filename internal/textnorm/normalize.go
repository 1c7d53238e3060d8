// Package textnorm canonicalizes mixed Arabic/Latin text for comparison.
//
// Normalize is idempotent and safe for concurrent use. Every lookup key in the
// engine (synonyms, intent keywords, unit aliases, classification names) is
// compared in normalized form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

const tatweel = 'ـ'

// isArabicMark reports whether r is a diacritic or Quranic annotation sign.
func isArabicMark(r rune) bool {
	switch {
	case r >= 0x0610 && r <= 0x061A:
		return true
	case r >= 0x064B && r <= 0x065F:
		return true
	case r == 0x0670:
		return true
	case r >= 0x06D6 && r <= 0x06ED:
		return true
	}
	return r == tatweel
}

// foldLetter maps hamza/madda carriers and ta marbuta onto their bare forms.
func foldLetter(r rune) rune {
	switch r {
	case 'أ', 'إ', 'آ', 'ٱ':
		return 'ا'
	case 'ئ', 'ى':
		return 'ي'
	case 'ؤ':
		return 'و'
	case 'ة':
		return 'ه'
	}
	return r
}

// Normalize returns the canonical comparison form of text.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	// Chains carry buffers, so one is built per call.
	t := transform.Chain(runes.Remove(runes.Predicate(isArabicMark)), runes.Map(foldLetter))
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}

	// Lower-casing before filtering keeps the result stable when a case
	// mapping emits a combining mark.
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte(' ')
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens returns the whitespace-separated tokens of the normalized text.
func Tokens(text string) []string {
	n := Normalize(text)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// Equal reports whether a and b normalize to the same string.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
