// Package value decides which number feeds a duty computation.
package value

import (
	"github.com/bassam-st/bassam-customs-ai/internal/extract"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
)

// Resolution is the value chosen for a query and how it was chosen.
type Resolution struct {
	Quantity *float64
	Source   model.ValueSource
	Unit     string
	Currency string
	Value    float64
}

// Known reports whether the value can be used for a fee. A computed or default
// value built on a missing catalog price is a placeholder, not a value.
func (r Resolution) Known(item model.CatalogItem) bool {
	if r.Source == model.ValueExplicit {
		return true
	}
	return item.HasPrice()
}

// Resolve applies the value policy: an explicit amount next to a currency
// marker, else quantity times the catalog price, else the catalog price for
// an implicit quantity of one. It never fails.
func Resolve(text string, item model.CatalogItem) Resolution {
	masked := extract.MaskCodes(text)
	qm := extract.Quantity(masked)

	r := Resolution{
		Currency: extract.Currency(text),
		Quantity: qm.Quantity,
		Unit:     qm.Unit,
	}
	if r.Unit == "" {
		r.Unit = item.Unit
	}

	price := item.DefaultPrice
	if price < 0 {
		price = 0
	}

	if amount, ok := extract.Amount(masked); ok {
		r.Value = amount
		r.Source = model.ValueExplicit
		return r
	}

	if qm.Quantity != nil {
		r.Value = *qm.Quantity * price
		r.Source = model.ValueComputedFromQuantity
		return r
	}

	r.Value = price
	r.Source = model.ValueDefaultUnitPrice
	return r
}
