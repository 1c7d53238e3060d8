// Package engine answers customs queries against an immutable catalog snapshot.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/bassam-st/bassam-customs-ai/internal/answer"
	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/duty"
	"github.com/bassam-st/bassam-customs-ai/internal/extract"
	"github.com/bassam-st/bassam-customs-ai/internal/intent"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/bassam-st/bassam-customs-ai/internal/service"
	"github.com/bassam-st/bassam-customs-ai/internal/synonym"
	"github.com/bassam-st/bassam-customs-ai/internal/textnorm"
	"github.com/bassam-st/bassam-customs-ai/internal/value"
)

// Engine resolves queries against the currently loaded snapshot.
// Loading a new snapshot swaps all derived state at once; queries already
// running keep the state they started with.
type Engine struct {
	state    atomic.Pointer[state]
	detector *intent.Detector
	extra    []synonym.Entry
}

// Config holds configuration options for the engine.
type Config struct {
	Detector *intent.Detector
	Extra    []synonym.Entry
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Detector: intent.Default(),
		Extra:    synonym.DefaultExtra,
	}
}

// New creates an engine with the default configuration.
func New() *Engine {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(config Config) *Engine {
	if config.Detector == nil {
		config.Detector = intent.Default()
	}
	return &Engine{
		detector: config.Detector,
		extra:    config.Extra,
	}
}

// Load builds the synonym index and rule table for snapshot and makes it current.
func (e *Engine) Load(snapshot *model.Snapshot) error {
	if snapshot == nil {
		return fmt.Errorf("%w: no snapshot", common.ErrCatalogUnavailable)
	}
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}

	st := newState(snapshot.Clone(), e.extra)
	e.state.Store(st)

	stats := e.Stats()
	slog.Info("Catalog loaded",
		"items", stats.Items,
		"classifications", stats.Classifications,
		"rules", stats.Rules,
		"synonyms", stats.Synonyms)
	return nil
}

// Stats counts what the current snapshot was indexed into.
type Stats struct {
	Items           int `json:"items"`
	Products        int `json:"products"`
	Synonyms        int `json:"synonyms"`
	Classifications int `json:"classifications"`
	Rules           int `json:"rules"`
	IntentPatterns  int `json:"intent_patterns"`
}

// Stats returns counts for the loaded snapshot. Only IntentPatterns is set
// before the first Load.
func (e *Engine) Stats() Stats {
	stats := Stats{IntentPatterns: e.detector.PatternCount()}
	st := e.state.Load()
	if st == nil {
		return stats
	}
	stats.Items = len(st.snapshot.Items)
	stats.Products = len(st.index.Canonicals())
	stats.Synonyms = st.index.Len()
	stats.Classifications = len(st.snapshot.Classifications)
	stats.Rules = st.rules.Len()
	return stats
}

// Reload fetches the stored snapshot from repo and loads it.
func (e *Engine) Reload(ctx context.Context, repo service.CatalogRepository) error {
	snapshot, err := repo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	return e.Load(snapshot)
}

// Snapshot returns a copy of the current snapshot, or nil.
func (e *Engine) Snapshot() *model.Snapshot {
	st := e.state.Load()
	if st == nil {
		return nil
	}
	return st.snapshot.Clone()
}

// Answer resolves query and builds its result. The only error is
// common.ErrCatalogUnavailable (or a context error); every other condition is
// a result variant.
func (e *Engine) Answer(ctx context.Context, query string) (answer.Result, error) {
	_, result, err := e.run(ctx, query)
	return result, err
}

// Resolve returns everything the engine understood about query.
func (e *Engine) Resolve(ctx context.Context, query string) (model.ResolvedQuery, error) {
	rq, _, err := e.run(ctx, query)
	return rq, err
}

func (e *Engine) run(ctx context.Context, query string) (model.ResolvedQuery, answer.Result, error) {
	if err := ctx.Err(); err != nil {
		return model.ResolvedQuery{}, answer.Result{}, err
	}

	st := e.state.Load()
	if st == nil || st.snapshot.IsEmpty() {
		return model.ResolvedQuery{}, answer.Result{}, common.ErrCatalogUnavailable
	}

	rq := model.ResolvedQuery{
		Query:  query,
		Intent: e.detector.Classify(query),
	}

	queryCode, hasQueryCode := extract.ClassificationCode(query)
	if hasQueryCode {
		rq.HSCode = queryCode
		rq.CodeSource = model.CodeFromQuery
	}

	item, found := st.resolveItem(query, queryCode)
	in := answer.Input{
		Query:      query,
		Intent:     rq.Intent,
		HSCode:     rq.HSCode,
		CodeSource: rq.CodeSource,
	}

	if !found {
		res := value.Resolution{Currency: extract.Currency(query)}
		rq.Currency = res.Currency
		in.Value = res
		result := answer.Build(in)
		common.LogDebug("Product not resolved", common.Fields{"query": query, "intent": rq.Intent})
		return rq, result, nil
	}

	rq.Product = item.Name
	if !hasQueryCode {
		rq.HSCode, rq.CodeSource = st.codeFor(item)
	}

	res := value.Resolve(query, item)
	rq.Currency = res.Currency
	rq.Quantity = res.Quantity
	rq.Unit = res.Unit
	rq.Value = res.Value
	rq.ValueSource = res.Source
	rq.ValueKnown = res.Known(item)
	if res.Source == model.ValueExplicit {
		rq.ExplicitValue = model.Float(res.Value)
	}

	rule := st.rules.RuleFor(item, rq.HSCode)
	outcome := duty.Evaluate(rule, res.Value)
	if outcome.Computed() {
		rq.Rate = outcome.Rate
		if rq.ValueKnown {
			rq.Fee = model.Float(outcome.Fee)
		}
	}

	in.Item = &item
	in.HSCode = rq.HSCode
	in.CodeSource = rq.CodeSource
	in.Value = res
	in.ValueKnown = rq.ValueKnown
	in.Outcome = outcome
	result := answer.Build(in)

	slog.Debug("Query resolved",
		"product", rq.Product,
		"intent", rq.Intent,
		"hs_code", rq.HSCode,
		"code_source", rq.CodeSource,
		"value_source", rq.ValueSource,
		"kind", result.Kind)

	return rq, result, nil
}

// state is everything derived from one snapshot. It is never mutated after newState.
type state struct {
	snapshot        *model.Snapshot
	index           *synonym.Index
	rules           *duty.Table
	classifications []classificationRow
}

type classificationRow struct {
	code     string
	name     string
	keywords []string
	entry    model.ClassificationEntry
}

func newState(snapshot *model.Snapshot, extra []synonym.Entry) *state {
	st := &state{
		snapshot: snapshot,
		index:    synonym.Build(snapshot.Items, extra),
		rules:    duty.NewTable(snapshot.Rules),
	}

	for _, entry := range snapshot.Classifications {
		row := classificationRow{
			code:  codeKey(entry.Code),
			name:  textnorm.Normalize(entry.Name),
			entry: entry,
		}
		for _, kw := range entry.Keywords {
			if n := textnorm.Normalize(kw); n != "" {
				row.keywords = append(row.keywords, n)
			}
		}
		st.classifications = append(st.classifications, row)
	}
	return st
}

// resolveItem maps query to a catalog item by name. When the name is not
// recognized but the query carries a code listed in the classification table,
// the table's name for that code is resolved instead.
func (st *state) resolveItem(query, queryCode string) (model.CatalogItem, bool) {
	if canonical, ok := st.index.Resolve(query); ok {
		return st.snapshot.Item(canonical)
	}
	if queryCode == "" {
		return model.CatalogItem{}, false
	}

	key := codeKey(queryCode)
	for _, row := range st.classifications {
		if row.code != key || row.entry.Name == "" {
			continue
		}
		if canonical, ok := st.index.Lookup(row.entry.Name); ok {
			return st.snapshot.Item(canonical)
		}
		if canonical, ok := st.index.Resolve(row.entry.Name); ok {
			return st.snapshot.Item(canonical)
		}
	}
	return model.CatalogItem{}, false
}

// codeFor looks up a classification code for item: the first table row whose
// name matches the canonical name loosely, else a code embedded in the notes.
func (st *state) codeFor(item model.CatalogItem) (string, model.CodeSource) {
	name := textnorm.Normalize(item.Name)
	if name != "" {
		for _, row := range st.classifications {
			if row.entry.Code == "" {
				continue
			}
			if row.matches(name) {
				return row.entry.Code, model.CodeFromTable
			}
		}
	}

	if code, ok := extract.ClassificationCode(item.Notes); ok {
		return code, model.CodeFromNotes
	}
	return "", ""
}

func (row classificationRow) matches(name string) bool {
	if row.name != "" && (row.name == name || strings.Contains(row.name, name) || strings.Contains(name, row.name)) {
		return true
	}
	for _, kw := range row.keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

func codeKey(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(extract.FoldDigits(s)), ".", "")
}
