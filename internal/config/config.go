package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"github.com/bassam-st/bassam-customs-ai/internal/common"
	"github.com/bassam-st/bassam-customs-ai/internal/service"
)

// Published catalog tables used when no URL is configured.
const (
	DefaultPricesURL = "https://cdn.jsdelivr.net/gh/bassam-st/bassam-customs-calculator@main/assets/prices_catalog.json"
	DefaultHSURL     = "https://cdn.jsdelivr.net/gh/bassam-st/bassam-customs-calculator@main/assets/hs_catalog.json"
)

// Config is the resolved application configuration.
type Config struct {
	DatabasePath string
	CachePath    string
	PINHash      string
	Catalog      CatalogConfig
}

// CatalogConfig locates the remote catalog tables.
type CatalogConfig struct {
	PricesURL string
	HSURL     string
	RulesURL  string
	Timeout   time.Duration
	Retries   int
}

// Load resolves configuration with this precedence:
// 1. Viper configuration (config file or CUSTOMS_ env vars bound by the CLI)
// 2. Direct environment variables (CUSTOMS_PRICES_URL, CUSTOMS_HS_URL, ...)
// 3. Default values
func Load() (*Config, error) {
	cfg := &Config{
		DatabasePath: filepath.Join(DataDir(), "customs.db"),
		CachePath:    filepath.Join(DataDir(), "cache.db"),
		Catalog: CatalogConfig{
			PricesURL: DefaultPricesURL,
			HSURL:     DefaultHSURL,
			Timeout:   30 * time.Second,
			Retries:   3,
		},
	}

	if v := viper.GetString("database.path"); v != "" {
		cfg.DatabasePath = ExpandPath(v)
	}
	if v := viper.GetString("cache.path"); v != "" {
		cfg.CachePath = ExpandPath(v)
	}
	if v := viper.GetString("admin.pin_hash"); v != "" {
		cfg.PINHash = v
	}
	if v := viper.GetString("catalog.prices_url"); v != "" {
		cfg.Catalog.PricesURL = v
	}
	if v := viper.GetString("catalog.hs_url"); v != "" {
		cfg.Catalog.HSURL = v
	}
	if v := viper.GetString("catalog.rules_url"); v != "" {
		cfg.Catalog.RulesURL = v
	}
	if viper.IsSet("catalog.timeout") {
		cfg.Catalog.Timeout = viper.GetDuration("catalog.timeout")
	}
	if viper.IsSet("catalog.retries") {
		cfg.Catalog.Retries = viper.GetInt("catalog.retries")
	}

	if !viper.IsSet("catalog.prices_url") {
		if v := os.Getenv("CUSTOMS_PRICES_URL"); v != "" {
			cfg.Catalog.PricesURL = v
		}
	}
	if !viper.IsSet("catalog.hs_url") {
		if v := os.Getenv("CUSTOMS_HS_URL"); v != "" {
			cfg.Catalog.HSURL = v
		}
	}
	if !viper.IsSet("catalog.rules_url") {
		if v := os.Getenv("CUSTOMS_RULES_URL"); v != "" {
			cfg.Catalog.RulesURL = v
		}
	}
	if !viper.IsSet("admin.pin_hash") {
		if v := os.Getenv("CUSTOMS_PIN_HASH"); v != "" {
			cfg.PINHash = v
		}
	}
	if !viper.IsSet("catalog.retries") {
		if v := os.Getenv("CUSTOMS_RETRIES"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("%w: CUSTOMS_RETRIES: %w", common.ErrInvalidConfig, err)
			}
			cfg.Catalog.Retries = n
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database.path is required", common.ErrMissingConfig)
	}
	return c.Catalog.Validate()
}

// Validate checks the catalog URLs and fetch settings.
func (c CatalogConfig) Validate() error {
	for name, raw := range map[string]string{
		"catalog.prices_url": c.PricesURL,
		"catalog.hs_url":     c.HSURL,
	} {
		if raw == "" {
			return fmt.Errorf("%w: %s is required", common.ErrMissingConfig, name)
		}
		if err := validateURL(raw); err != nil {
			return fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, name, err)
		}
	}
	if c.RulesURL != "" {
		if err := validateURL(c.RulesURL); err != nil {
			return fmt.Errorf("%w: catalog.rules_url: %w", common.ErrInvalidConfig, err)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: catalog.timeout must be positive", common.ErrInvalidConfig)
	}
	if c.Retries < 1 {
		return fmt.Errorf("%w: catalog.retries must be at least 1", common.ErrInvalidConfig)
	}
	return nil
}

// RetryOptions returns the retry policy for catalog fetches.
func (c CatalogConfig) RetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  c.Retries,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
