package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bassam-st/bassam-customs-ai/internal/common"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoad_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("CUSTOMS_PRICES_URL", "")
	t.Setenv("CUSTOMS_HS_URL", "")
	t.Setenv("CUSTOMS_RULES_URL", "")
	t.Setenv("CUSTOMS_PIN_HASH", "")
	t.Setenv("CUSTOMS_RETRIES", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data", "customs", "customs.db"), cfg.DatabasePath)
	assert.Equal(t, filepath.Join("/data", "customs", "cache.db"), cfg.CachePath)
	assert.Equal(t, DefaultPricesURL, cfg.Catalog.PricesURL)
	assert.Equal(t, DefaultHSURL, cfg.Catalog.HSURL)
	assert.Empty(t, cfg.Catalog.RulesURL)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 3, cfg.Catalog.RetryOptions().MaxAttempts)
}

func TestLoad_Precedence(t *testing.T) {
	resetViper(t)
	t.Setenv("CUSTOMS_PRICES_URL", "https://env.example/prices.json")
	t.Setenv("CUSTOMS_HS_URL", "https://env.example/hs.json")
	t.Setenv("CUSTOMS_RETRIES", "5")

	viper.Set("catalog.prices_url", "https://viper.example/prices.json")
	viper.Set("database.path", "$HOME/customs-test.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://viper.example/prices.json", cfg.Catalog.PricesURL, "viper wins over env")
	assert.Equal(t, "https://env.example/hs.json", cfg.Catalog.HSURL, "env fills unset keys")
	assert.Equal(t, 5, cfg.Catalog.Retries)
	assert.NotContains(t, cfg.DatabasePath, "$HOME")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		setup func()
		want  error
		name  string
	}{
		{
			name:  "bad scheme",
			setup: func() { viper.Set("catalog.hs_url", "ftp://example.com/hs.json") },
			want:  common.ErrInvalidConfig,
		},
		{
			name:  "zero retries",
			setup: func() { viper.Set("catalog.retries", 0) },
			want:  common.ErrInvalidConfig,
		},
		{
			name:  "negative timeout",
			setup: func() { viper.Set("catalog.timeout", "-1s") },
			want:  common.ErrInvalidConfig,
		},
		{
			name:  "bad rules url",
			setup: func() { viper.Set("catalog.rules_url", "not a url") },
			want:  common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("CUSTOMS_HS_URL", "")
			tt.setup()
			_, err := Load()
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_BadRetriesEnv(t *testing.T) {
	resetViper(t)
	t.Setenv("CUSTOMS_RETRIES", "many")

	_, err := Load()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("CUSTOMS_DIR", "/srv/customs")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/tester"},
		{"~/data/customs.db", "/home/tester/data/customs.db"},
		{"$CUSTOMS_DIR/cache.db", "/srv/customs/cache.db"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in), tt.in)
	}
}

func TestDirs_HonorXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg/data")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	assert.Equal(t, "/xdg/data/customs", DataDir())
	assert.Equal(t, "/xdg/config/customs", ConfigDir())
}
