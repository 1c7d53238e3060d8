package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bassam-st/bassam-customs-ai/internal/cache"
	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/model"
	"github.com/bassam-st/bassam-customs-ai/internal/service"
)

// File names read by DirSource.
const (
	PricesFile = "prices_catalog.json"
	HSFile     = "hs_catalog.json"
	RulesFile  = "duty_rules.json"
)

// maxPayloadBytes caps a single downloaded table.
const maxPayloadBytes = 32 << 20

// PayloadCache stores the last good body per section.
type PayloadCache interface {
	Put(key string, body []byte) error
	Get(key string) (cache.Entry, error)
}

// HTTPSource fetches the catalog tables from remote JSON URLs.
type HTTPSource struct {
	client    *http.Client
	cache     PayloadCache
	pricesURL string
	hsURL     string
	rulesURL  string
	retry     service.RetryOptions
}

// HTTPConfig configures an HTTPSource.
type HTTPConfig struct {
	Client    *http.Client
	Cache     PayloadCache
	PricesURL string
	HSURL     string
	RulesURL  string
	Retry     service.RetryOptions
	Timeout   time.Duration
}

// NewHTTPSource creates a source. The rules URL and the cache are optional.
func NewHTTPSource(cfg HTTPConfig) (*HTTPSource, error) {
	if cfg.PricesURL == "" || cfg.HSURL == "" {
		return nil, fmt.Errorf("%w: prices and hs URLs are required", common.ErrMissingConfig)
	}
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{
		client:    client,
		cache:     cfg.Cache,
		pricesURL: cfg.PricesURL,
		hsURL:     cfg.HSURL,
		rulesURL:  cfg.RulesURL,
		retry:     cfg.Retry,
	}, nil
}

// Fetch downloads all tables concurrently. A table that cannot be downloaded
// is served from the cache; prices and hs without either fail the fetch.
func (s *HTTPSource) Fetch(ctx context.Context) (*model.Snapshot, error) {
	var (
		items   []model.CatalogItem
		entries []model.ClassificationEntry
		rules   []model.DutyRule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := s.load(gctx, SectionPrices, s.pricesURL)
		if err != nil {
			return err
		}
		items, err = ParseItems(body)
		return err
	})
	g.Go(func() error {
		body, err := s.load(gctx, SectionClassifications, s.hsURL)
		if err != nil {
			return err
		}
		entries, err = ParseClassifications(body)
		return err
	})
	if s.rulesURL != "" {
		g.Go(func() error {
			body, err := s.load(gctx, SectionRules, s.rulesURL)
			if err != nil {
				slog.Warn("Duty rules unavailable, deriving rates from notes", "error", err)
				return nil
			}
			rules, err = ParseRules(body)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("Fetched catalog",
		"items", len(items),
		"classifications", len(entries),
		"rules", len(rules))
	return model.NewSnapshot(items, entries, rules), nil
}

// load returns a validated body for one section, falling back to the cache.
func (s *HTTPSource) load(ctx context.Context, section Section, url string) ([]byte, error) {
	var body []byte
	err := common.WithRetry(ctx, func() error {
		b, err := s.get(ctx, url)
		if err != nil {
			return err
		}
		body = b
		return nil
	}, s.retry)

	if err == nil {
		if _, perr := Apply(nil, section, body); perr != nil {
			err = perr
		}
	}
	if err == nil {
		if s.cache != nil {
			if cerr := s.cache.Put(string(section), body); cerr != nil {
				common.LogError(cerr, "Failed to cache catalog payload", common.Fields{"section": section})
			}
		}
		return body, nil
	}
	if errors.Is(err, context.Canceled) {
		return nil, err
	}

	if s.cache != nil {
		entry, cerr := s.cache.Get(string(section))
		if cerr == nil {
			slog.Warn("Using cached catalog payload",
				"section", section,
				"fetched_at", entry.FetchedAt,
				"error", err)
			return entry.Body, nil
		}
	}
	return nil, fmt.Errorf("%w: %s: %w", common.ErrCatalogUnavailable, section, err)
}

func (s *HTTPSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: false}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &common.RetryableError{Err: err, Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, common.ErrRateLimit
	case resp.StatusCode >= 500:
		return nil, &common.RetryableError{Err: fmt.Errorf("GET %s: %s", url, resp.Status), Retryable: true}
	case resp.StatusCode != http.StatusOK:
		return nil, &common.RetryableError{Err: fmt.Errorf("GET %s: %s", url, resp.Status), Retryable: false}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: true}
	}
	return body, nil
}

// DirSource reads the catalog tables from JSON files in one directory.
type DirSource struct {
	dir string
}

// NewDirSource creates a source reading from dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Dir returns the source directory.
func (s *DirSource) Dir() string {
	return s.dir
}

// Fetch reads the prices and hs files and the optional rules file.
func (s *DirSource) Fetch(ctx context.Context) (*model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := model.NewSnapshot(nil, nil, nil)
	for _, f := range []struct {
		section  Section
		name     string
		optional bool
	}{
		{SectionPrices, PricesFile, false},
		{SectionClassifications, HSFile, false},
		{SectionRules, RulesFile, true},
	} {
		data, err := os.ReadFile(filepath.Join(s.dir, f.name))
		if err != nil {
			if f.optional && errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("%w: %w", common.ErrCatalogUnavailable, err)
		}
		next, err := Apply(snap, f.section, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		snap = next
	}

	slog.Info("Read catalog directory",
		"dir", s.dir,
		"items", len(snap.Items),
		"classifications", len(snap.Classifications),
		"rules", len(snap.Rules))
	return snap, nil
}
