package testutil

import (
	"github.com/bassam-st/bassam-customs-ai/internal/model"
)

// CatalogBuilder provides a fluent interface for constructing test snapshots.
// Rows keep the order they were added in.
type CatalogBuilder struct {
	items           []model.CatalogItem
	classifications []model.ClassificationEntry
	rules           []model.DutyRule
}

// NewCatalogBuilder returns an empty builder.
func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{}
}

// WithItem adds a catalog item.
func (b *CatalogBuilder) WithItem(name string, price float64, unit, notes string, keywords ...string) *CatalogBuilder {
	b.items = append(b.items, model.CatalogItem{
		Name:         name,
		DefaultPrice: price,
		Unit:         unit,
		Notes:        notes,
		Keywords:     keywords,
	})
	return b
}

// WithClassification adds a classification table row.
func (b *CatalogBuilder) WithClassification(name, code string, keywords ...string) *CatalogBuilder {
	b.classifications = append(b.classifications, model.ClassificationEntry{
		Name:     name,
		Code:     code,
		Keywords: keywords,
	})
	return b
}

// WithRule adds a percent-of-value rule. A negative rate adds a rule with an unknown rate.
func (b *CatalogBuilder) WithRule(key string, rate float64) *CatalogBuilder {
	rule := model.DutyRule{ProductKey: key, Kind: model.RulePercentOfValue}
	if rate >= 0 {
		rule.Rate = model.Float(rate)
	}
	b.rules = append(b.rules, rule)
	return b
}

// WithBasicCatalog adds the small catalog most tests share.
func (b *CatalogBuilder) WithBasicCatalog() *CatalogBuilder {
	return b.
		WithItem("مكيف", 10, "", "5%").
		WithItem("ثلاجة", 200, "", "الفئة10%").
		WithItem("حديد تسليح", 100, "ton", "2%").
		WithItem("مودم انترنت", 15, "piece", "الفئة5% بند 85176200").
		WithItem("ملابس", 24, "dozen", "").
		WithItem("اسمنت", 0, "ton", "10%").
		WithClassification("ملابس رجالية", "62034200").
		WithClassification("اسمنت بورتلاندي", "25232900", "اسمنت")
}

// Build returns a new snapshot holding the added rows.
func (b *CatalogBuilder) Build() *model.Snapshot {
	return model.NewSnapshot(b.items, b.classifications, b.rules)
}

// BasicSnapshot returns the shared test catalog.
func BasicSnapshot() *model.Snapshot {
	return NewCatalogBuilder().WithBasicCatalog().Build()
}
