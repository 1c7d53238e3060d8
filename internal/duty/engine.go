package duty

import (
	"strings"

	"github.com/bassam-st/bassam-customs-ai/internal/extract"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/bassam-st/bassam-customs-ai/internal/textnorm"
)

// Status is the result class of evaluating a rule.
type Status string

const (
	// StatusComputed means the fee was computed.
	StatusComputed Status = "computed"
	// StatusRateUnknown means the rule carries no rate. It is never a zero fee.
	StatusRateUnknown Status = "rate_unknown"
	// StatusUnsupported means the rule kind has no evaluator.
	StatusUnsupported Status = "unsupported"
)

// Reasons attached to non-computed outcomes.
const (
	ReasonRateUnknown     = "rate unknown"
	ReasonUnsupportedKind = "unsupported rule type"
)

// Outcome is the result of Evaluate.
type Outcome struct {
	Rate   *float64
	Status Status
	Reason string
	Fee    float64
}

// Computed reports whether the outcome carries a fee.
func (o Outcome) Computed() bool {
	return o.Status == StatusComputed
}

// Evaluate applies rule to value.
func Evaluate(rule model.DutyRule, value float64) Outcome {
	switch rule.Kind {
	case model.RulePercentOfValue:
		if rule.Rate == nil || *rule.Rate < 0 || *rule.Rate > 1 {
			return Outcome{Status: StatusRateUnknown, Reason: ReasonRateUnknown}
		}
		rate := *rule.Rate
		return Outcome{
			Status: StatusComputed,
			Rate:   &rate,
			Fee:    value * rate,
		}
	default:
		return Outcome{Status: StatusUnsupported, Reason: ReasonUnsupportedKind}
	}
}

// DeriveRule builds the implicit percentOfValue rule from an item's notes.
// The rate stays nil when the notes carry none.
func DeriveRule(item model.CatalogItem) model.DutyRule {
	rule := model.DutyRule{
		ProductKey: item.Name,
		Kind:       model.RulePercentOfValue,
	}
	if rate, ok := ExtractRate(item.Notes); ok {
		rule.Rate = model.Float(rate)
	}
	return rule
}

type tableRow struct {
	code string
	name string
	rule model.DutyRule
}

// Table is an explicit duty-rule table prepared for lookups.
type Table struct {
	rows []tableRow
}

// NewTable indexes rules in their given order.
func NewTable(rules []model.DutyRule) *Table {
	t := &Table{rows: make([]tableRow, 0, len(rules))}
	for _, r := range rules {
		t.rows = append(t.rows, tableRow{
			code: codeKey(r.ProductKey),
			name: textnorm.Normalize(r.ProductKey),
			rule: r,
		})
	}
	return t
}

// Len returns the number of explicit rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// RuleFor returns the first explicit rule keyed by the classification code or
// by the item's canonical name, falling back to the rule derived from notes.
func (t *Table) RuleFor(item model.CatalogItem, code string) model.DutyRule {
	if t != nil {
		code = codeKey(code)
		name := textnorm.Normalize(item.Name)
		for _, row := range t.rows {
			if code != "" && row.code == code {
				return row.rule
			}
			if name != "" && row.name == name {
				return row.rule
			}
		}
	}
	return DeriveRule(item)
}

// codeKey folds digits and drops dots so "8517.62.00" and "85176200" agree.
func codeKey(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(extract.FoldDigits(s)), ".", "")
}
