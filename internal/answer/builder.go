// Package answer assembles the tagged result of a customs query.
package answer

import (
	"fmt"

	"github.com/bassam-st/bassam-customs-ai/internal/duty"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/bassam-st/bassam-customs-ai/internal/value"
)

// Kind tags a result variant. The set is closed.
type Kind string

// Result variants.
const (
	KindNotFound         Kind = "not_found"
	KindHSOnly           Kind = "hs_only"
	KindPriceOnly        Kind = "price_only"
	KindNeedValueAndRate Kind = "need_value_and_rate"
	KindNeedValue        Kind = "need_value"
	KindNeedRate         Kind = "need_rate"
	KindDutyResult       Kind = "duty_result"
	KindGeneralInfo      Kind = "general_info"
)

// Kinds lists every variant.
var Kinds = []Kind{
	KindNotFound, KindHSOnly, KindPriceOnly, KindNeedValueAndRate,
	KindNeedValue, KindNeedRate, KindDutyResult, KindGeneralInfo,
}

// Result is the structured answer to one query. Pointer fields are absent
// when unknown, which keeps an unknown rate distinct from a zero rate.
type Result struct {
	Price       *float64          `json:"price,omitempty"`
	Quantity    *float64          `json:"quantity,omitempty"`
	Value       *float64          `json:"value,omitempty"`
	Rate        *float64          `json:"rate,omitempty"`
	Fee         *float64          `json:"fee,omitempty"`
	Kind        Kind              `json:"kind"`
	Query       string            `json:"query"`
	Product     string            `json:"product,omitempty"`
	HSCode      string            `json:"hs_code,omitempty"`
	CodeSource  model.CodeSource  `json:"code_source,omitempty"`
	Intent      model.Intent      `json:"intent"`
	Currency    string            `json:"currency"`
	Unit        string            `json:"unit,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	ValueSource model.ValueSource `json:"value_source,omitempty"`
	RateIssue   duty.Status       `json:"rate_issue,omitempty"`
	Guidance    string            `json:"guidance,omitempty"`
}

// Input is everything the builder needs to pick a variant.
type Input struct {
	Item       *model.CatalogItem
	Outcome    duty.Outcome
	Query      string
	HSCode     string
	CodeSource model.CodeSource
	Intent     model.Intent
	Value      value.Resolution
	ValueKnown bool
}

// Build selects exactly one variant from (product, intent, value known, rate known).
func Build(in Input) Result {
	// A code typed in the query is reported even when no product resolves.
	r := Result{
		Query:      in.Query,
		Intent:     in.Intent,
		Currency:   in.Value.Currency,
		HSCode:     in.HSCode,
		CodeSource: in.CodeSource,
	}

	if in.Item == nil {
		r.Kind = KindNotFound
		r.Guidance = GuidanceNotFound
		return r
	}

	item := *in.Item
	r.Product = item.Name
	r.Unit = in.Value.Unit
	if r.Unit == "" {
		r.Unit = item.Unit
	}
	if item.HasPrice() {
		r.Price = ptr(item.DefaultPrice)
	}

	switch in.Intent {
	case model.IntentHSOnly:
		r.Kind = KindHSOnly
		if r.HSCode == "" {
			r.Guidance = GuidanceNoCode
		}
	case model.IntentPriceOnly:
		r.Kind = KindPriceOnly
		r.Notes = item.Notes
		if r.Price == nil {
			r.Guidance = GuidanceNoPrice
		}
	case model.IntentDuty:
		buildDuty(&r, in)
	default:
		r.Kind = KindGeneralInfo
		r.Notes = item.Notes
		r.Guidance = fmt.Sprintf(GuidanceGeneralFormat, item.Name)
	}

	return r
}

func buildDuty(r *Result, in Input) {
	rateKnown := in.Outcome.Computed()

	if in.ValueKnown {
		r.Value = ptr(in.Value.Value)
		r.ValueSource = in.Value.Source
		r.Quantity = in.Value.Quantity
	}
	if rateKnown {
		r.Rate = in.Outcome.Rate
	} else {
		r.RateIssue = in.Outcome.Status
	}

	switch {
	case !in.ValueKnown && !rateKnown:
		r.Kind = KindNeedValueAndRate
		r.Guidance = fmt.Sprintf(GuidanceNeedValueAndRateFormat, r.Product)
	case !in.ValueKnown:
		r.Kind = KindNeedValue
		r.Guidance = fmt.Sprintf(GuidanceNeedValueFormat, r.Product)
	case !rateKnown:
		r.Kind = KindNeedRate
		r.Guidance = GuidanceRateUnknown
		if in.Outcome.Status == duty.StatusUnsupported {
			r.Guidance = GuidanceUnsupportedRule
		}
	default:
		r.Kind = KindDutyResult
		r.Fee = ptr(in.Outcome.Fee)
	}
}

func ptr(f float64) *float64 {
	return &f
}
