package model

import "fmt"

// RuleKind identifies how a duty rule computes its fee.
type RuleKind string

// Rule kind constants.
const (
	// RulePercentOfValue charges a flat fraction of the declared value.
	RulePercentOfValue RuleKind = "percentOfValue"
)

// DutyRule binds a duty computation to a classification code or product name.
type DutyRule struct {
	// Rate is nil when it could not be determined. Nil and zero are different rules.
	Rate       *float64 `json:"rate,omitempty"`
	ProductKey string   `json:"key"`
	Kind       RuleKind `json:"kind"`
}

// HasRate reports whether the rule carries a known rate.
func (r DutyRule) HasRate() bool {
	return r.Rate != nil
}

// Validate ensures the rule has valid data.
func (r DutyRule) Validate() error {
	if r.ProductKey == "" {
		return fmt.Errorf("rule key is required")
	}
	if r.Kind == "" {
		return fmt.Errorf("rule kind is required")
	}
	if r.Rate != nil && (*r.Rate < 0 || *r.Rate > 1) {
		return fmt.Errorf("rate must be between 0 and 1")
	}
	return nil
}

// Float returns a pointer to f.
func Float(f float64) *float64 {
	return &f
}
