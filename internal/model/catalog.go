// Package model defines the core data structures for the customs engine.
package model

import (
	"fmt"
	"time"
)

// CatalogItem is one priced, named product record.
type CatalogItem struct {
	Name         string   `json:"name"`
	Unit         string   `json:"unit,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	DefaultPrice float64  `json:"price"`
}

// HasPrice reports whether the item carries a usable reference price.
// Imports coerce a missing price to zero, so zero means unknown.
func (i CatalogItem) HasPrice() bool {
	return i.DefaultPrice > 0
}

// ClassificationEntry maps a product name to an externally assigned classification code.
type ClassificationEntry struct {
	Name     string   `json:"name"`
	Code     string   `json:"code"`
	Keywords []string `json:"keywords,omitempty"`
}

// Snapshot is an immutable view of the three independently loaded tables.
// Row order is significant: first-wins heuristics depend on it.
type Snapshot struct {
	LoadedAt        time.Time             `json:"loaded_at"`
	Items           []CatalogItem         `json:"items"`
	Classifications []ClassificationEntry `json:"classifications"`
	Rules           []DutyRule            `json:"rules"`
}

// NewSnapshot copies the given tables into a new snapshot.
func NewSnapshot(items []CatalogItem, classifications []ClassificationEntry, rules []DutyRule) *Snapshot {
	s := &Snapshot{
		LoadedAt:        time.Now(),
		Items:           make([]CatalogItem, len(items)),
		Classifications: make([]ClassificationEntry, len(classifications)),
		Rules:           make([]DutyRule, len(rules)),
	}
	for i, item := range items {
		item.Keywords = cloneStrings(item.Keywords)
		s.Items[i] = item
	}
	for i, entry := range classifications {
		entry.Keywords = cloneStrings(entry.Keywords)
		s.Classifications[i] = entry
	}
	copy(s.Rules, rules)
	return s
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := NewSnapshot(s.Items, s.Classifications, s.Rules)
	c.LoadedAt = s.LoadedAt
	return c
}

// WithItems returns a new snapshot with the price catalog replaced.
func (s *Snapshot) WithItems(items []CatalogItem) *Snapshot {
	base := s.orEmpty()
	return NewSnapshot(items, base.Classifications, base.Rules)
}

// WithClassifications returns a new snapshot with the classification table replaced.
func (s *Snapshot) WithClassifications(entries []ClassificationEntry) *Snapshot {
	base := s.orEmpty()
	return NewSnapshot(base.Items, entries, base.Rules)
}

// WithRules returns a new snapshot with the duty-rule table replaced.
func (s *Snapshot) WithRules(rules []DutyRule) *Snapshot {
	base := s.orEmpty()
	return NewSnapshot(base.Items, base.Classifications, rules)
}

// IsEmpty reports whether the snapshot holds no data at all.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (len(s.Items) == 0 && len(s.Classifications) == 0 && len(s.Rules) == 0)
}

// Item returns the first catalog item with exactly the given canonical name.
func (s *Snapshot) Item(name string) (CatalogItem, bool) {
	if s == nil || name == "" {
		return CatalogItem{}, false
	}
	for _, item := range s.Items {
		if item.Name == name {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// Validate checks the rule table. Items and classifications are free-form by contract.
func (s *Snapshot) Validate() error {
	if s == nil {
		return fmt.Errorf("snapshot is required")
	}
	for i, rule := range s.Rules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("rule at index %d: %w", i, err)
		}
	}
	return nil
}

func (s *Snapshot) orEmpty() *Snapshot {
	if s == nil {
		return &Snapshot{}
	}
	return s
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
