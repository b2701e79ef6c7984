// Package config provides configuration management for the screening application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Screening ScreeningConfig `mapstructure:"screening"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Report    ReportConfig    `mapstructure:"report"`
}

// ScreeningConfig holds the tunables of the screening pipeline.
type ScreeningConfig struct {
	BatchSize         int           `mapstructure:"batch_size"`
	Period            string        `mapstructure:"period"` // trailing window, e.g. "1mo"
	SignificanceLevel float64       `mapstructure:"significance_level"`
	Pacing            time.Duration `mapstructure:"pacing"`
	Blocklist         []string      `mapstructure:"blocklist"`
	ExcludeSuffixes   string        `mapstructure:"exclude_suffixes"`
}

// ProviderConfig holds market data provider configuration.
type ProviderConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
}

// DatabaseConfig holds the result store configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ReportConfig holds candidate report configuration.
type ReportConfig struct {
	MaxZScore float64 `mapstructure:"max_z_score"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/stock-prediction"
	}
	return filepath.Join(home, ".config", "stock-prediction")
}

// DefaultDatabasePath returns the default SQLite database path.
func DefaultDatabasePath() string {
	return filepath.Join(DefaultConfigDir(), "stocks.db")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// Config file not found, write the template for next time
		if werr := createTemplateConfig(configDir); werr != nil {
			return nil, fmt.Errorf("writing config template: %w", werr)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("screening.batch_size", 50)
	v.SetDefault("screening.period", "1mo")
	v.SetDefault("screening.significance_level", 0.05)
	v.SetDefault("screening.pacing", 100*time.Millisecond)
	v.SetDefault("screening.blocklist", []string{"FB", "BRK.B", "SIVB"})
	v.SetDefault("screening.exclude_suffixes", "WRUP")
	v.SetDefault("provider.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("provider.timeout", 30*time.Second)
	v.SetDefault("provider.concurrency", 8)
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("report.max_z_score", -2.0)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STOCKS_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("SCREENER_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Screening.BatchSize = n
		}
	}
	if v := os.Getenv("SCREENER_SIGNIFICANCE_LEVEL"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Screening.SignificanceLevel = f
		}
	}
	if v := os.Getenv("SCREENER_PROVIDER_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Screening.BatchSize <= 0 {
		return fmt.Errorf("screening.batch_size must be positive")
	}
	if c.Screening.SignificanceLevel <= 0 || c.Screening.SignificanceLevel >= 1 {
		return fmt.Errorf("screening.significance_level must be in (0, 1)")
	}
	if c.Screening.Pacing < 0 {
		return fmt.Errorf("screening.pacing must be non-negative")
	}
	switch c.Screening.Period {
	case "1mo", "3mo", "6mo", "1y", "2y":
	default:
		return fmt.Errorf("screening.period must be one of 1mo, 3mo, 6mo, 1y, 2y")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url must not be empty")
	}
	if c.Provider.Concurrency <= 0 {
		return fmt.Errorf("provider.concurrency must be positive")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	return nil
}
