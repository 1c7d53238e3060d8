package value

import (
	"testing"

	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cement := model.CatalogItem{Name: "اسمنت", DefaultPrice: 100, Unit: "ton"}
	unpriced := model.CatalogItem{Name: "مودم"}

	tests := []struct {
		quantity  *float64
		name      string
		text      string
		source    model.ValueSource
		unit      string
		currency  string
		item      model.CatalogItem
		value     float64
		wantKnown bool
	}{
		{
			name:      "explicit amount beats quantity",
			text:      "5 طن اسمنت قيمتها 900 دولار",
			item:      cement,
			value:     900,
			source:    model.ValueExplicit,
			quantity:  ptr(5),
			unit:      "ton",
			currency:  "USD",
			wantKnown: true,
		},
		{
			name:      "quantity times price",
			text:      "5 tons of اسمنت",
			item:      cement,
			value:     500,
			source:    model.ValueComputedFromQuantity,
			quantity:  ptr(5),
			unit:      "ton",
			currency:  "USD",
			wantKnown: true,
		},
		{
			name:      "item unit used when text has none",
			text:      "3 اسمنت",
			item:      cement,
			value:     300,
			source:    model.ValueComputedFromQuantity,
			quantity:  ptr(3),
			unit:      "ton",
			currency:  "USD",
			wantKnown: true,
		},
		{
			name:      "default unit price",
			text:      "جمارك الاسمنت",
			item:      cement,
			value:     100,
			source:    model.ValueDefaultUnitPrice,
			unit:      "ton",
			currency:  "USD",
			wantKnown: true,
		},
		{
			name:      "missing price degrades to zero",
			text:      "جمارك مودم",
			item:      unpriced,
			value:     0,
			source:    model.ValueDefaultUnitPrice,
			currency:  "USD",
			wantKnown: false,
		},
		{
			name:      "missing price with quantity",
			text:      "10 مودم",
			item:      unpriced,
			value:     0,
			source:    model.ValueComputedFromQuantity,
			quantity:  ptr(10),
			currency:  "USD",
			wantKnown: false,
		},
		{
			name:      "explicit amount without price is known",
			text:      "مودم 300 ريال",
			item:      unpriced,
			value:     300,
			source:    model.ValueExplicit,
			quantity:  ptr(300),
			currency:  "SAR",
			wantKnown: true,
		},
		{
			name:      "classification code is not a quantity",
			text:      "رسوم 25232900",
			item:      cement,
			value:     100,
			source:    model.ValueDefaultUnitPrice,
			unit:      "ton",
			currency:  "USD",
			wantKnown: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.text, tt.item)
			assert.InDelta(t, tt.value, got.Value, 1e-9)
			assert.Equal(t, tt.source, got.Source)
			assert.Equal(t, tt.unit, got.Unit)
			assert.Equal(t, tt.currency, got.Currency)
			assert.Equal(t, tt.wantKnown, got.Known(tt.item))
			if tt.quantity == nil {
				assert.Nil(t, got.Quantity)
			} else {
				require.NotNil(t, got.Quantity)
				assert.InDelta(t, *tt.quantity, *got.Quantity, 1e-9)
			}
		})
	}
}

func ptr(f float64) *float64 {
	return &f
}
