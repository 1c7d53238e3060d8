package answer

import (
	"encoding/json"
	"testing"

	"github.com/bassam-st/bassam-customs-ai/internal/duty"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/bassam-st/bassam-customs-ai/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func computed(rate, v float64) duty.Outcome {
	return duty.Evaluate(model.DutyRule{ProductKey: "x", Kind: model.RulePercentOfValue, Rate: model.Float(rate)}, v)
}

var rateUnknown = duty.Outcome{Status: duty.StatusRateUnknown, Reason: duty.ReasonRateUnknown}

func TestBuild_VariantTable(t *testing.T) {
	item := &model.CatalogItem{Name: "مودم", DefaultPrice: 15, Unit: "piece", Notes: "الفئة5%"}
	explicit := value.Resolution{Value: 300, Source: model.ValueExplicit, Currency: "USD"}

	tests := []struct {
		item       *model.CatalogItem
		outcome    duty.Outcome
		name       string
		intent     model.Intent
		want       Kind
		valueKnown bool
	}{
		{name: "no product", item: nil, intent: model.IntentDuty, want: KindNotFound},
		{name: "no product general", item: nil, intent: model.IntentGeneral, want: KindNotFound},
		{name: "hs only", item: item, intent: model.IntentHSOnly, want: KindHSOnly},
		{name: "price only", item: item, intent: model.IntentPriceOnly, want: KindPriceOnly},
		{name: "general", item: item, intent: model.IntentGeneral, want: KindGeneralInfo},
		{name: "duty no value no rate", item: item, intent: model.IntentDuty, outcome: rateUnknown, want: KindNeedValueAndRate},
		{name: "duty no value rate known", item: item, intent: model.IntentDuty, outcome: computed(0.05, 0), want: KindNeedValue},
		{name: "duty value no rate", item: item, intent: model.IntentDuty, outcome: rateUnknown, valueKnown: true, want: KindNeedRate},
		{
			name: "duty value unsupported rule", item: item, intent: model.IntentDuty,
			outcome: duty.Outcome{Status: duty.StatusUnsupported}, valueKnown: true, want: KindNeedRate,
		},
		{name: "duty both known", item: item, intent: model.IntentDuty, outcome: computed(0.05, 300), valueKnown: true, want: KindDutyResult},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Build(Input{
				Query:      "q",
				Item:       tt.item,
				Intent:     tt.intent,
				Value:      explicit,
				ValueKnown: tt.valueKnown,
				Outcome:    tt.outcome,
			})
			assert.Equal(t, tt.want, r.Kind)
			assert.Contains(t, Kinds, r.Kind)
		})
	}
}

func TestBuild_DutyResult(t *testing.T) {
	item := &model.CatalogItem{Name: "X", DefaultPrice: 10, Notes: "5%"}
	r := Build(Input{
		Query:      "compute X 300 dollars",
		Item:       item,
		HSCode:     "85176200",
		CodeSource: model.CodeFromTable,
		Intent:     model.IntentDuty,
		Value:      value.Resolution{Value: 300, Source: model.ValueExplicit, Currency: "USD"},
		ValueKnown: true,
		Outcome:    computed(0.05, 300),
	})

	require.Equal(t, KindDutyResult, r.Kind)
	require.NotNil(t, r.Value)
	require.NotNil(t, r.Rate)
	require.NotNil(t, r.Fee)
	assert.Equal(t, 300.0, *r.Value)
	assert.Equal(t, 0.05, *r.Rate)
	assert.Equal(t, 300*0.05, *r.Fee)
	assert.Equal(t, "X", r.Product)
	assert.Equal(t, "85176200", r.HSCode)
	assert.Empty(t, r.Guidance)
	assert.Empty(t, r.RateIssue)
}

func TestBuild_NeedRateCarriesValueAndIssue(t *testing.T) {
	r := Build(Input{
		Item:       &model.CatalogItem{Name: "X"},
		Intent:     model.IntentDuty,
		Value:      value.Resolution{Value: 300, Source: model.ValueExplicit, Currency: "USD"},
		ValueKnown: true,
		Outcome:    rateUnknown,
	})

	require.Equal(t, KindNeedRate, r.Kind)
	require.NotNil(t, r.Value)
	assert.Equal(t, 300.0, *r.Value)
	assert.Nil(t, r.Rate)
	assert.Nil(t, r.Fee)
	assert.Equal(t, duty.StatusRateUnknown, r.RateIssue)
	assert.Equal(t, GuidanceRateUnknown, r.Guidance)
}

func TestBuild_SoftConditionsCarryGuidance(t *testing.T) {
	bare := &model.CatalogItem{Name: "X"}
	cases := []Input{
		{Item: nil, Intent: model.IntentDuty},
		{Item: bare, Intent: model.IntentHSOnly},
		{Item: bare, Intent: model.IntentPriceOnly},
		{Item: bare, Intent: model.IntentDuty, Outcome: rateUnknown},
		{Item: bare, Intent: model.IntentDuty, Outcome: computed(0.1, 0)},
		{Item: bare, Intent: model.IntentDuty, Outcome: rateUnknown, ValueKnown: true},
	}
	for _, in := range cases {
		r := Build(in)
		assert.NotEmpty(t, r.Guidance, "kind %s", r.Kind)
	}
}

func TestResult_JSONOmitsUnknownRate(t *testing.T) {
	r := Build(Input{
		Item:       &model.CatalogItem{Name: "X"},
		Intent:     model.IntentDuty,
		Value:      value.Resolution{Value: 300, Source: model.ValueExplicit, Currency: "USD"},
		ValueKnown: true,
		Outcome:    rateUnknown,
	})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "need_rate", decoded["kind"])
	assert.NotContains(t, decoded, "rate")
	assert.NotContains(t, decoded, "fee")
	assert.Equal(t, "rate_unknown", decoded["rate_issue"])
}
