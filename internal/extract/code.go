package extract

import (
	"regexp"
	"strings"
)

// codeRegex matches a bare 8-digit classification code, either plain
// ("85176200") or dotted ("8517.62.00").
var codeRegex = regexp.MustCompile(`(?:^|[^\d.,])(\d{8}|\d{4}\.\d{2}\.\d{2})\.?(?:$|[^\d.,])`)

// ClassificationCode returns the first bare 8-digit code in text, without dots.
func ClassificationCode(text string) (string, bool) {
	m := codeRegex.FindStringSubmatch(FoldDigits(text))
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(m[1], ".", ""), true
}

// MaskCodes replaces every classification code in text with a space so the
// code is not read back as a quantity.
func MaskCodes(text string) string {
	folded := FoldDigits(text)
	// Adjacent codes share a delimiter, so masking loops until stable.
	for {
		loc := codeRegex.FindStringSubmatchIndex(folded)
		if loc == nil {
			return folded
		}
		folded = folded[:loc[2]] + " " + folded[loc[3]:]
	}
}
