package answer

import (
	"testing"

	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/bassam-st/bassam-customs-ai/internal/value"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	item := &model.CatalogItem{Name: "مودم", DefaultPrice: 15, Unit: "piece", Notes: "الفئة5%"}
	explicit := value.Resolution{Value: 300, Source: model.ValueExplicit, Currency: "USD"}

	tests := []struct {
		name string
		want string
		in   Input
	}{
		{
			name: "not found",
			in:   Input{Intent: model.IntentDuty},
			want: GuidanceNotFound,
		},
		{
			name: "hs only with code",
			in:   Input{Item: item, Intent: model.IntentHSOnly, HSCode: "85176200"},
			want: "الصنف: مودم\nالبند: 85176200",
		},
		{
			name: "hs only without code",
			in:   Input{Item: item, Intent: model.IntentHSOnly},
			want: "الصنف: مودم\nالبند: غير متوفر\n" + GuidanceNoCode,
		},
		{
			name: "price only",
			in:   Input{Item: item, Intent: model.IntentPriceOnly},
			want: "الصنف: مودم\nالبند: غير متوفر\nالقيمة: 15 piece\nملاحظات: الفئة5%",
		},
		{
			name: "duty result",
			in: Input{
				Item: item, Intent: model.IntentDuty, HSCode: "85176200",
				Value: explicit, ValueKnown: true, Outcome: computed(0.05, 300),
			},
			want: "الصنف: مودم\nالبند: 85176200\nالقيمة: USD 300\nالنسبة: 5%\nالرسوم الجمركية: USD 15\nالرسوم = القيمة × النسبة",
		},
		{
			name: "need value",
			in:   Input{Item: item, Intent: model.IntentDuty, Outcome: computed(0.07, 0)},
			want: "الصنف: مودم\nالبند: غير متوفر\nالنسبة: 7%\nأحتاج قيمة البضاعة بالدولار للحساب. مثال: \"مودم 300 دولار\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(Build(tt.in)))
		})
	}
}

func TestRender_Deterministic(t *testing.T) {
	in := Input{
		Item:   &model.CatalogItem{Name: "X", Notes: "n"},
		Intent: model.IntentGeneral,
	}
	first := Render(Build(in))
	for range 10 {
		assert.Equal(t, first, Render(Build(in)))
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "15", FormatNumber(15))
	assert.Equal(t, "0.05", FormatNumber(0.05))
	assert.Equal(t, "7", FormatNumber(0.07*100))
	assert.Equal(t, "1234.5", FormatNumber(1234.5))
}
