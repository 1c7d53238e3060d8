package catalog

import (
	"testing"

	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItems(t *testing.T) {
	data := []byte(`[
		{"name": "مودم", "price": 15, "unit": "piece", "notes": "الفئة5%"},
		{"title": "صحن نت", "price": "40.5"},
		{"label": "ملابس", "price": "1,200", "keywords": ["لبس", "البسة"]},
		{"name": "سلك", "keywords": "سلك كاميرا، كيبل"},
		{"price": "n/a"},
		{"name": "أرقام", "price": "٢٥"}
	]`)

	items, err := ParseItems(data)
	require.NoError(t, err)
	require.Len(t, items, 6)

	assert.Equal(t, model.CatalogItem{Name: "مودم", DefaultPrice: 15, Unit: "piece", Notes: "الفئة5%"}, items[0])
	assert.Equal(t, "صحن نت", items[1].Name)
	assert.Equal(t, 40.5, items[1].DefaultPrice)
	assert.Equal(t, 1200.0, items[2].DefaultPrice)
	assert.Equal(t, []string{"لبس", "البسة"}, items[2].Keywords)
	assert.Equal(t, []string{"سلك كاميرا", "كيبل"}, items[3].Keywords)
	assert.Equal(t, 0.0, items[3].DefaultPrice, "missing price defaults to zero")
	assert.Equal(t, "", items[4].Name, "missing name defaults to empty")
	assert.Equal(t, 0.0, items[4].DefaultPrice, "unparseable price defaults to zero")
	assert.Equal(t, 25.0, items[5].DefaultPrice)
}

func TestParseItems_RejectsMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "object", data: `{"name": "مودم"}`},
		{name: "not json", data: `name,price`},
		{name: "truncated", data: `[{"name": "مودم"`},
		{name: "trailing data", data: `[] []`},
		{name: "non-object row", data: `[{"name": "a"}, "b"]`},
		{name: "null row", data: `[null]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := ParseItems([]byte(tt.data))
			assert.ErrorIs(t, err, common.ErrInvalidImportPayload)
			assert.Nil(t, items)
		})
	}
}

func TestParseClassifications(t *testing.T) {
	data := []byte(`[
		{"name": "مودم", "hs": "85176200"},
		{"title": "ملابس", "code": 62034200},
		{"label": "اسمنت", "hs_code": "2523.29.00", "keywords": ["بورتلاندي"]},
		{"name": "حديد", "tariff": "72142000"},
		{"name": "خشب", "id": 44071000},
		{"name": "بلا بند"}
	]`)

	entries, err := ParseClassifications(data)
	require.NoError(t, err)
	require.Len(t, entries, 6)

	assert.Equal(t, "85176200", entries[0].Code)
	assert.Equal(t, "62034200", entries[1].Code)
	assert.Equal(t, "2523.29.00", entries[2].Code)
	assert.Equal(t, []string{"بورتلاندي"}, entries[2].Keywords)
	assert.Equal(t, "72142000", entries[3].Code)
	assert.Equal(t, "44071000", entries[4].Code)
	assert.Equal(t, "", entries[5].Code)
}

func TestParseRules(t *testing.T) {
	data := []byte(`[
		{"key": "85176200", "kind": "percentOfValue", "rate": 0.05},
		{"key": "ملابس", "rate": 10},
		{"productKey": "اسمنت", "rate": "2.5%"},
		{"key": "حديد"}
	]`)

	rules, err := ParseRules(data)
	require.NoError(t, err)
	require.Len(t, rules, 4)

	assert.InDelta(t, 0.05, *rules[0].Rate, 1e-12)
	assert.Equal(t, model.RulePercentOfValue, rules[1].Kind, "kind defaults to percentOfValue")
	assert.InDelta(t, 0.10, *rules[1].Rate, 1e-12)
	assert.Equal(t, "اسمنت", rules[2].ProductKey)
	assert.InDelta(t, 0.025, *rules[2].Rate, 1e-12)
	assert.Nil(t, rules[3].Rate, "missing rate stays unknown")
}

func TestParseRules_RejectsWholePayload(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "rate out of range", data: `[{"key": "a", "rate": 0.1}, {"key": "b", "rate": 250}]`},
		{name: "negative rate", data: `[{"key": "a", "rate": -0.1}]`},
		{name: "missing key", data: `[{"rate": 0.1}]`},
		{name: "not an array", data: `{"key": "a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := ParseRules([]byte(tt.data))
			assert.ErrorIs(t, err, common.ErrInvalidImportPayload)
			assert.Nil(t, rules)
		})
	}
}

func TestApply(t *testing.T) {
	base := model.NewSnapshot([]model.CatalogItem{{Name: "قديم"}}, []model.ClassificationEntry{{Name: "قديم", Code: "1"}}, nil)

	next, err := Apply(base, SectionPrices, []byte(`[{"name": "جديد", "price": 5}]`))
	require.NoError(t, err)
	assert.Equal(t, "جديد", next.Items[0].Name)
	assert.Len(t, next.Classifications, 1, "other sections are kept")
	assert.Equal(t, "قديم", base.Items[0].Name, "base is untouched")

	_, err = Apply(base, SectionClassifications, []byte(`not json`))
	assert.ErrorIs(t, err, common.ErrInvalidImportPayload)

	next, err = Apply(base, SectionRules, []byte(`[{"key": "قديم", "rate": 5}]`))
	require.NoError(t, err)
	require.Len(t, next.Rules, 1)

	_, err = Apply(base, Section("bogus"), nil)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestParseSection(t *testing.T) {
	s, err := ParseSection("hs")
	require.NoError(t, err)
	assert.Equal(t, SectionClassifications, s)

	_, err = ParseSection("vendors")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}
