package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Stock-Prediction Screener Configuration

[screening]
# Symbols fetched per provider call
batch_size = 50
# Trailing price window: 1mo, 3mo, 6mo, 1y, 2y
period = "1mo"
# Normality test significance threshold; p-values at or below this fail the gate
significance_level = 0.05
# Delay between provider batches (e.g., "100ms")
pacing = "100ms"
# Symbols never sent to the provider
blocklist = ["FB", "BRK.B", "SIVB"]
# Trailing characters marking non-common-stock instruments (warrants, rights, units, preferred)
exclude_suffixes = "WRUP"

[provider]
# Market data endpoint
base_url = "https://query1.finance.yahoo.com"
# Per-batch request timeout (e.g., "30s")
timeout = "30s"
# Concurrent symbol fetches within one batch
concurrency = 8

[database]
# SQLite database file; empty uses ~/.config/stock-prediction/stocks.db
# path = "stocks.db"

[report]
# Candidate report cutoff: show symbols with z_score at or below this
max_z_score = -2.0
`

// createTemplateConfig writes the default config.toml if it does not exist.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
