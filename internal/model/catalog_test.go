package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogItem_HasPrice(t *testing.T) {
	assert.True(t, CatalogItem{DefaultPrice: 12.5}.HasPrice())
	assert.False(t, CatalogItem{}.HasPrice())
	assert.False(t, CatalogItem{DefaultPrice: -1}.HasPrice())
}

func TestNewSnapshot_CopiesInput(t *testing.T) {
	items := []CatalogItem{{Name: "مودم", Keywords: []string{"راوتر"}}}
	snap := NewSnapshot(items, nil, nil)

	items[0].Name = "changed"
	items[0].Keywords[0] = "changed"

	assert.Equal(t, "مودم", snap.Items[0].Name)
	assert.Equal(t, "راوتر", snap.Items[0].Keywords[0])
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestSnapshot_WithSections(t *testing.T) {
	base := NewSnapshot(
		[]CatalogItem{{Name: "a"}},
		[]ClassificationEntry{{Name: "a", Code: "85176200"}},
		[]DutyRule{{ProductKey: "a", Kind: RulePercentOfValue, Rate: Float(0.05)}},
	)

	next := base.WithItems([]CatalogItem{{Name: "b"}})
	require.Len(t, next.Items, 1)
	assert.Equal(t, "b", next.Items[0].Name)
	assert.Equal(t, base.Classifications, next.Classifications)
	assert.Equal(t, "a", base.Items[0].Name, "original snapshot must not change")

	next = base.WithClassifications(nil)
	assert.Empty(t, next.Classifications)
	assert.Len(t, next.Items, 1)

	next = base.WithRules(nil)
	assert.Empty(t, next.Rules)

	var empty *Snapshot
	assert.True(t, empty.IsEmpty())
	assert.Len(t, empty.WithItems([]CatalogItem{{Name: "x"}}).Items, 1)
}

func TestSnapshot_Item(t *testing.T) {
	snap := NewSnapshot([]CatalogItem{
		{Name: "ملابس", DefaultPrice: 10},
		{Name: "ملابس", DefaultPrice: 20},
	}, nil, nil)

	item, ok := snap.Item("ملابس")
	require.True(t, ok)
	assert.Equal(t, 10.0, item.DefaultPrice, "first row wins")

	_, ok = snap.Item("غير موجود")
	assert.False(t, ok)
	_, ok = snap.Item("")
	assert.False(t, ok)
}

func TestDutyRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		rule    DutyRule
		wantErr bool
	}{
		{
			name: "valid percent rule",
			rule: DutyRule{ProductKey: "85176200", Kind: RulePercentOfValue, Rate: Float(0.1)},
		},
		{
			name: "unknown rate is valid",
			rule: DutyRule{ProductKey: "مودم", Kind: RulePercentOfValue},
		},
		{
			name:    "missing key",
			rule:    DutyRule{Kind: RulePercentOfValue},
			wantErr: true,
			errMsg:  "rule key is required",
		},
		{
			name:    "missing kind",
			rule:    DutyRule{ProductKey: "x"},
			wantErr: true,
			errMsg:  "rule kind is required",
		},
		{
			name:    "rate above one",
			rule:    DutyRule{ProductKey: "x", Kind: RulePercentOfValue, Rate: Float(5)},
			wantErr: true,
			errMsg:  "rate must be between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSnapshot_Validate(t *testing.T) {
	snap := NewSnapshot(nil, nil, []DutyRule{{ProductKey: "x", Kind: RulePercentOfValue, Rate: Float(2)}})
	err := snap.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rule at index 0")

	var nilSnap *Snapshot
	assert.Error(t, nilSnap.Validate())
}
