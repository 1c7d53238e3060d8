// Package duty derives duty rules for catalog items and evaluates them.
package duty

import (
	"regexp"
	"strconv"

	"github.com/bassam-st/bassam-customs-ai/internal/extract"
)

var (
	percentRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[%٪]`)
	classRegex   = regexp.MustCompile(`(?i)(?:(?:ال)?فئ[ةه]|\bclass)\s*(\d+(?:\.\d+)?)`)
)

// ExtractRate reads a duty rate from free-text notes. "‹n›%" is tried first,
// then "الفئة ‹n›" / "class ‹n›"; both mean percent. The second return value
// is false when no rate is present or the rate falls outside [0, 1].
func ExtractRate(notes string) (float64, bool) {
	if notes == "" {
		return 0, false
	}
	folded := extract.FoldDigits(notes)

	for _, re := range []*regexp.Regexp{percentRegex, classRegex} {
		m := re.FindStringSubmatch(folded)
		if m == nil {
			continue
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		rate := n / 100
		if rate < 0 || rate > 1 {
			return 0, false
		}
		return rate, true
	}
	return 0, false
}
