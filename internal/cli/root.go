package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/FrankTrani/Stock-Prediction/internal/config"
	"github.com/FrankTrani/Stock-Prediction/internal/logging"
	"github.com/FrankTrani/Stock-Prediction/internal/provider"
	"github.com/FrankTrani/Stock-Prediction/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// openStore opens the result store for the duration of one command.
// Callers must Close it when done.
func (app *App) openStore() (store.DataStore, error) {
	return store.NewSQLiteStore(app.Config.Database.Path)
}

// newProvider builds the market data provider from configuration.
func (app *App) newProvider() *provider.YahooProvider {
	cfg := app.Config.Provider
	return provider.NewYahooProvider(cfg.BaseURL, cfg.Timeout, cfg.Concurrency, app.Logger)
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "screener",
		Short: "Stock-Prediction - statistical anomaly screener",
		Long: `Stock-Prediction screens a universe of equity symbols for statistical
anomalies. For each symbol it downloads the trailing daily close history,
tests whether the log returns are plausibly normal (Shapiro-Wilk), and
standardizes the latest price into a Z-score. Results are persisted to a
local SQLite database.

Use 'screener run' for the full import-screen-report cycle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/stock-prediction)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addSymbolCommands(rootCmd, app)
	addScreenCommands(rootCmd, app)
	addReportCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Stock-Prediction screener v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Screening Configuration")
	output.Printf("  Batch Size:       %d\n", cfg.Screening.BatchSize)
	output.Printf("  Period:           %s\n", cfg.Screening.Period)
	output.Printf("  Significance:     %.3f\n", cfg.Screening.SignificanceLevel)
	output.Printf("  Pacing:           %s\n", cfg.Screening.Pacing)
	output.Printf("  Blocklist:        %v\n", cfg.Screening.Blocklist)
	output.Printf("  Exclude Suffixes: %s\n", cfg.Screening.ExcludeSuffixes)
	output.Println()

	output.Bold("Provider Configuration")
	output.Printf("  Base URL:    %s\n", cfg.Provider.BaseURL)
	output.Printf("  Timeout:     %s\n", cfg.Provider.Timeout)
	output.Printf("  Concurrency: %d\n", cfg.Provider.Concurrency)
	output.Println()

	output.Bold("Database")
	output.Printf("  Path: %s\n", cfg.Database.Path)
	output.Println()

	output.Bold("Report")
	output.Printf("  Max Z-Score: %.2f\n", cfg.Report.MaxZScore)

	return nil
}
