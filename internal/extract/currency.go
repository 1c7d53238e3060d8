package extract

import (
	"regexp"
	"strings"
)

// Currency codes.
const (
	USD = "USD"
	SAR = "SAR"
	AED = "AED"
)

// DefaultCurrency is reported when the text names no currency.
const DefaultCurrency = USD

type currencyWords struct {
	code    string
	symbols []string
	words   []string
}

// currencies is checked in order; the first currency with a marker present wins.
var currencies = []currencyWords{
	{code: USD, symbols: []string{"$"}, words: []string{"usd", "dollar", "dollars", "دولار", "دولارات"}},
	{code: SAR, symbols: []string{"﷼"}, words: []string{"sar", "riyal", "riyals", "rial", "ريال", "ريالات"}},
	{code: AED, words: []string{"aed", "dirham", "dirhams", "درهم", "دراهم"}},
}

// Currency infers the currency of a query. It never returns "".
func Currency(text string) string {
	tokens := scanTokens(text)
	for _, c := range currencies {
		for _, s := range c.symbols {
			if strings.Contains(text, s) {
				return c.code
			}
		}
		for _, w := range c.words {
			for _, tok := range tokens {
				if tokenMatches(tok, w) {
					return c.code
				}
			}
		}
	}
	return DefaultCurrency
}

const (
	currencySymbols     = `\$|﷼`
	latinCurrencyWords  = `usd|dollars?|sar|riyals?|rials?|aed|dirhams?`
	arabicCurrencyWords = `(?:بال|ب|ال)?(?:دولارات|دولار|ريالات|ريال|دراهم|درهم)`
)

// A Latin word ends at a word boundary when it follows the number ("300usd")
// and starts at one when it leads ("USD300"). Arabic words may carry a proclitic.
var (
	amountThenCurrency = regexp.MustCompile(`(?i)(` + numberPattern + `)\s*(?:` +
		currencySymbols + `|(?:` + latinCurrencyWords + `)\b|` + arabicCurrencyWords + `)`)
	currencyThenAmount = regexp.MustCompile(`(?i)(?:` +
		currencySymbols + `|\b(?:` + latinCurrencyWords + `)|` + arabicCurrencyWords + `)\s*(` + numberPattern + `)`)
)

// Amount returns a number stated next to a currency marker ("300 دولار",
// "300$", "USD 300", "USD300"). Bare numbers are quantities, not amounts.
func Amount(text string) (float64, bool) {
	folded := FoldDigits(text)
	for _, re := range []*regexp.Regexp{amountThenCurrency, currencyThenAmount} {
		if m := re.FindStringSubmatch(folded); m != nil {
			if v, ok := parseNumber(m[1]); ok {
				return v, true
			}
		}
	}
	return 0, false
}
