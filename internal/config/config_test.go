package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesTemplateAndDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)

	// A template config is written for the next run.
	_, err = os.Stat(filepath.Join(dir, "config.toml"))
	assert.NoError(t, err)

	assert.Equal(t, 50, cfg.Screening.BatchSize)
	assert.Equal(t, "1mo", cfg.Screening.Period)
	assert.InDelta(t, 0.05, cfg.Screening.SignificanceLevel, 1e-12)
	assert.Equal(t, 100*time.Millisecond, cfg.Screening.Pacing)
	assert.Equal(t, []string{"FB", "BRK.B", "SIVB"}, cfg.Screening.Blocklist)
	assert.Equal(t, "WRUP", cfg.Screening.ExcludeSuffixes)
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Provider.BaseURL)
	assert.Equal(t, 8, cfg.Provider.Concurrency)
	assert.InDelta(t, -2.0, cfg.Report.MaxZScore, 1e-12)
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[screening]
batch_size = 25
period = "3mo"
significance_level = 0.01

[report]
max_z_score = -1.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Screening.BatchSize)
	assert.Equal(t, "3mo", cfg.Screening.Period)
	assert.InDelta(t, 0.01, cfg.Screening.SignificanceLevel, 1e-12)
	assert.InDelta(t, -1.5, cfg.Report.MaxZScore, 1e-12)

	// Unset sections keep their defaults.
	assert.Equal(t, "https://query1.finance.yahoo.com", cfg.Provider.BaseURL)
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STOCKS_DB_PATH", "/tmp/override.db")
	t.Setenv("SCREENER_BATCH_SIZE", "10")
	t.Setenv("SCREENER_SIGNIFICANCE_LEVEL", "0.10")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Screening.BatchSize)
	assert.InDelta(t, 0.10, cfg.Screening.SignificanceLevel, 1e-12)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Screening: ScreeningConfig{
				BatchSize:         50,
				Period:            "1mo",
				SignificanceLevel: 0.05,
			},
			Provider: ProviderConfig{
				BaseURL:     "https://query1.finance.yahoo.com",
				Concurrency: 4,
			},
			Database: DatabaseConfig{Path: "/tmp/stocks.db"},
		}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero batch size", func(c *Config) { c.Screening.BatchSize = 0 }},
		{"alpha at zero", func(c *Config) { c.Screening.SignificanceLevel = 0 }},
		{"alpha at one", func(c *Config) { c.Screening.SignificanceLevel = 1 }},
		{"negative pacing", func(c *Config) { c.Screening.Pacing = -time.Second }},
		{"unknown period", func(c *Config) { c.Screening.Period = "5d" }},
		{"empty provider url", func(c *Config) { c.Provider.BaseURL = "" }},
		{"zero concurrency", func(c *Config) { c.Provider.Concurrency = 0 }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
