// Package extract pulls quantities, units, currencies, amounts and
// classification codes out of free-form query text.
//
// Numbers are read from the raw text (after digit folding) because
// normalization drops decimal points. Keywords are matched on normalized
// tokens.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/bassam-st/bassam-customs-ai/internal/textnorm"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// numberPattern matches an integer or decimal literal with optional thousands separators.
const numberPattern = `\d+(?:,\d{3})*(?:\.\d+)?`

var numberRegex = regexp.MustCompile(numberPattern)

// foldDigit maps Arabic-Indic and extended (Persian) digits and the Arabic
// decimal and thousands separators onto their ASCII forms.
func foldDigit(r rune) rune {
	switch {
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	case r == '٫':
		return '.'
	case r == '٬':
		return ','
	}
	return r
}

// FoldDigits rewrites every digit in text to ASCII.
func FoldDigits(text string) string {
	out, _, err := transform.String(runes.Map(foldDigit), text)
	if err != nil {
		return text
	}
	return out
}

// parseNumber parses a literal matched by numberPattern.
func parseNumber(literal string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(literal, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// proclitics are attached Arabic prefixes stripped when matching keyword tokens.
var proclitics = []string{"بال", "وال", "لل", "ال", "ب", "ل", "و"}

// tokenMatches reports whether token equals word, optionally behind a proclitic.
func tokenMatches(token, word string) bool {
	if token == word {
		return true
	}
	for _, p := range proclitics {
		if rest, ok := strings.CutPrefix(token, p); ok && rest == word {
			return true
		}
	}
	return false
}

// containsPhrase reports whether the token sequence phrase occurs in tokens.
// Only the first token of the phrase may carry a proclitic.
func containsPhrase(tokens, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(tokens) {
		return false
	}
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		if !tokenMatches(tokens[i], phrase[0]) {
			continue
		}
		matched := true
		for j := 1; j < len(phrase); j++ {
			if tokens[i+j] != phrase[j] {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// scanTokens normalizes text and splits glued numbers from letters so that
// "5kg" and "550w" expose their unit tokens.
func scanTokens(text string) []string {
	normalized := textnorm.Normalize(FoldDigits(text))
	if normalized == "" {
		return nil
	}

	var b strings.Builder
	var prev rune
	for i, r := range normalized {
		if i > 0 && prev != ' ' && r != ' ' && unicode.IsDigit(prev) != unicode.IsDigit(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = r
	}
	return strings.Fields(b.String())
}
