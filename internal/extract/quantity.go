package extract

import (
	"strings"

	"github.com/bassam-st/bassam-customs-ai/internal/textnorm"
)

// UnitAlias maps a canonical unit code to its localized spellings.
type UnitAlias struct {
	Code    string
	Aliases []string
}

// Units is the ordered alias table. Compound units come before the units
// whose aliases they contain.
var Units = []UnitAlias{
	{Code: "kva", Aliases: []string{"kva", "كيلو فولت امبير", "كيلوفولت امبير", "كي في ايه"}},
	{Code: "kw", Aliases: []string{"kw", "كيلو وات", "كيلووات", "كيلو واط"}},
	{Code: "ton", Aliases: []string{"ton", "tons", "tonne", "tonnes", "طن", "اطنان"}},
	{Code: "kg", Aliases: []string{"kg", "kgs", "kilo", "kilogram", "كيلو", "كيلوغرام", "كيلوجرام", "كجم", "كغ"}},
	{Code: "ah", Aliases: []string{"ah", "امبير ساعه", "امبير"}},
	{Code: "watt", Aliases: []string{"watt", "watts", "w", "وات", "واط"}},
	{Code: "dozen", Aliases: []string{"dozen", "dozens", "dz", "درزن", "دزينه", "دزن"}},
	{Code: "piece", Aliases: []string{"piece", "pieces", "pcs", "pc", "حبه", "حبات", "قطعه", "قطع"}},
	{Code: "liter", Aliases: []string{"liter", "liters", "litre", "litres", "ltr", "لتر", "لترات"}},
	{Code: "yard", Aliases: []string{"yard", "yards", "yd", "يارده", "يارد", "ياردات"}},
	{Code: "roll", Aliases: []string{"roll", "rolls", "لفه", "لفات", "رول", "رولات"}},
	{Code: "m2", Aliases: []string{"m2", "sqm", "متر مربع", "م2"}},
	{Code: "meter", Aliases: []string{"meter", "meters", "metre", "m", "متر", "امتار"}},
	{Code: "inch", Aliases: []string{"inch", "inches", "بوصه", "انش"}},
}

type compiledUnit struct {
	code    string
	phrases [][]string
}

var compiledUnits = compileUnits(Units)

func compileUnits(table []UnitAlias) []compiledUnit {
	out := make([]compiledUnit, 0, len(table))
	for _, u := range table {
		cu := compiledUnit{code: u.Code}
		for _, alias := range u.Aliases {
			if phrase := scanTokens(alias); len(phrase) > 0 {
				cu.phrases = append(cu.phrases, phrase)
			}
		}
		out = append(out, cu)
	}
	return out
}

var unitWords = collectUnitWords(Units)

func collectUnitWords(table []UnitAlias) map[string]struct{} {
	words := make(map[string]struct{})
	for _, u := range table {
		for _, alias := range u.Aliases {
			n := textnorm.Normalize(alias)
			if n != "" && !strings.Contains(n, " ") {
				words[n] = struct{}{}
			}
		}
	}
	return words
}

// IsUnitWord reports whether a normalized token is a single-word unit alias,
// optionally behind an attached proclitic ("للطن", "بالكيلو").
func IsUnitWord(token string) bool {
	if _, ok := unitWords[token]; ok {
		return true
	}
	for _, p := range proclitics {
		if rest, ok := strings.CutPrefix(token, p); ok {
			if _, ok := unitWords[rest]; ok {
				return true
			}
		}
	}
	return false
}

// QuantityMatch is the result of scanning a query for a quantity and unit.
type QuantityMatch struct {
	Quantity *float64
	Unit     string
}

// Quantity extracts the first number in text and the first unit alias in table order.
// Classification codes should be masked by the caller.
func Quantity(text string) QuantityMatch {
	var m QuantityMatch

	if literal := numberRegex.FindString(FoldDigits(text)); literal != "" {
		if q, ok := parseNumber(literal); ok {
			m.Quantity = &q
		}
	}

	m.Unit = Unit(text)
	return m
}

// Unit returns the code of the first alias in table order present in text, or "".
// An alias matches whole tokens, never a substring of a word, so short aliases
// such as "w" and "m" do not fire inside other words.
func Unit(text string) string {
	tokens := scanTokens(text)
	if len(tokens) == 0 {
		return ""
	}
	for _, u := range compiledUnits {
		for _, phrase := range u.phrases {
			if containsPhrase(tokens, phrase) {
				return u.code
			}
		}
	}
	return ""
}
