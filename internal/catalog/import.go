// Package catalog parses catalog payloads and fetches them from their sources.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/extract"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
)

// Accepted field names, first present wins.
var (
	nameFields  = []string{"name", "title", "label"}
	codeFields  = []string{"hs", "code", "hs_code", "tariff", "id"}
	ruleKeys    = []string{"key", "productKey", "product_key", "code", "name"}
	priceFields = []string{"price", "defaultPrice", "default_price"}
)

// Section names one of the three independently loaded tables.
type Section string

// Sections.
const (
	SectionPrices          Section = "prices"
	SectionClassifications Section = "hs"
	SectionRules           Section = "rules"
)

// ParseSection validates a section name.
func ParseSection(s string) (Section, error) {
	switch Section(s) {
	case SectionPrices, SectionClassifications, SectionRules:
		return Section(s), nil
	default:
		return "", fmt.Errorf("%w: unknown section %q (want prices, hs or rules)", common.ErrInvalidConfig, s)
	}
}

// Apply parses data as section and returns base with that section replaced.
// base is not modified. On error nothing is applied.
func Apply(base *model.Snapshot, section Section, data []byte) (*model.Snapshot, error) {
	switch section {
	case SectionPrices:
		items, err := ParseItems(data)
		if err != nil {
			return nil, err
		}
		return base.WithItems(items), nil
	case SectionClassifications:
		entries, err := ParseClassifications(data)
		if err != nil {
			return nil, err
		}
		return base.WithClassifications(entries), nil
	case SectionRules:
		rules, err := ParseRules(data)
		if err != nil {
			return nil, err
		}
		return base.WithRules(rules), nil
	default:
		return nil, fmt.Errorf("%w: unknown section %q", common.ErrInvalidConfig, section)
	}
}

// ParseItems parses a price catalog. The payload must be a JSON array of objects.
func ParseItems(data []byte) ([]model.CatalogItem, error) {
	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}

	items := make([]model.CatalogItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, model.CatalogItem{
			Name:         firstString(row, nameFields...),
			DefaultPrice: firstNumber(row, priceFields...),
			Unit:         firstString(row, "unit"),
			Notes:        firstString(row, "notes", "note"),
			Keywords:     stringList(row["keywords"]),
		})
	}
	return items, nil
}

// ParseClassifications parses a classification table.
func ParseClassifications(data []byte) ([]model.ClassificationEntry, error) {
	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}

	entries := make([]model.ClassificationEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, model.ClassificationEntry{
			Name:     firstString(row, nameFields...),
			Code:     firstString(row, codeFields...),
			Keywords: stringList(row["keywords"]),
		})
	}
	return entries, nil
}

// ParseRules parses an explicit duty-rule table. Rates above one and up to 100
// are read as percentages. Any invalid rule rejects the whole payload.
func ParseRules(data []byte) ([]model.DutyRule, error) {
	rows, err := decodeRows(data)
	if err != nil {
		return nil, err
	}

	rules := make([]model.DutyRule, 0, len(rows))
	for i, row := range rows {
		rule := model.DutyRule{
			ProductKey: firstString(row, ruleKeys...),
			Kind:       model.RuleKind(firstString(row, "kind", "type")),
		}
		if rule.Kind == "" {
			rule.Kind = model.RulePercentOfValue
		}
		if rate, ok := rateValue(row["rate"]); ok {
			rule.Rate = model.Float(rate)
		}
		if err := rule.Validate(); err != nil {
			return nil, common.InvalidPayload("rule %d: %v", i, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// decodeRows rejects anything that is not a JSON array of objects.
func decodeRows(data []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, common.InvalidPayload("empty payload")
	}
	if trimmed[0] != '[' {
		return nil, common.InvalidPayload("expected a JSON array")
	}

	var raw []json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, common.InvalidPayload("%v", err)
	}
	if dec.More() {
		return nil, common.InvalidPayload("trailing data after array")
	}

	rows := make([]map[string]any, 0, len(raw))
	for i, r := range raw {
		var row map[string]any
		rowDec := json.NewDecoder(bytes.NewReader(r))
		rowDec.UseNumber()
		if err := rowDec.Decode(&row); err != nil || row == nil {
			return nil, common.InvalidPayload("row %d: expected an object", i)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func firstString(row map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := toString(row[k]); s != "" {
			return s
		}
	}
	return ""
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func firstNumber(row map[string]any, keys ...string) float64 {
	for _, k := range keys {
		if f, ok := toNumber(row[k]); ok {
			return f
		}
	}
	return 0
}

func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(extract.FoldDigits(t)), ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// rateValue coerces a rate given as a fraction, a percentage number or a "5%" string.
func rateValue(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		trimmed := strings.TrimSpace(s)
		if pct, found := strings.CutSuffix(trimmed, "%"); found {
			f, ok := toNumber(pct)
			return f / 100, ok
		}
	}
	f, ok := toNumber(v)
	if !ok {
		return 0, false
	}
	if f > 1 && f <= 100 {
		f /= 100
	}
	return f, true
}

// stringList accepts a JSON list of strings or a single comma-separated string.
func stringList(v any) []string {
	var out []string
	switch t := v.(type) {
	case []any:
		for _, e := range t {
			if s := toString(e); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.FieldsFunc(t, func(r rune) bool { return r == ',' || r == '،' }) {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
