package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
	"github.com/FrankTrani/Stock-Prediction/pkg/utils"
)

// symbolRow is the CSV import shape. Name and Sector are optional; the
// enrich command can fill them in later from the provider.
type symbolRow struct {
	Symbol string `csv:"symbol"`
	Name   string `csv:"name"`
	Sector string `csv:"sector"`
}

// addSymbolCommands adds symbol universe management commands.
func addSymbolCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "symbols",
		Short: "Symbol universe management",
		Long:  "Import, list, and enrich the universe of symbols to screen.",
	}

	cmd.AddCommand(newSymbolsImportCmd(app))
	cmd.AddCommand(newSymbolsListCmd(app))
	cmd.AddCommand(newSymbolsEnrichCmd(app))

	rootCmd.AddCommand(cmd)
}

func newSymbolsImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import symbols into the universe",
		Long: `Import symbols from a file into the screening universe.

The default format is plain text, one ticker per line. With --csv the file
is parsed as CSV with a header row of symbol,name,sector. Existing symbols
are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			asCSV, _ := cmd.Flags().GetBool("csv")

			var (
				symbols []models.StockInfo
				err     error
			)
			if asCSV {
				symbols, err = readSymbolsCSV(args[0])
			} else {
				symbols, err = readSymbolsText(args[0])
			}
			if err != nil {
				return err
			}
			if len(symbols) == 0 {
				return fmt.Errorf("no symbols found in %s", args[0])
			}

			st, err := app.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			if err := st.InitSchema(ctx); err != nil {
				return err
			}
			if err := st.AddSymbols(ctx, symbols); err != nil {
				return err
			}

			app.Logger.Info().Int("count", len(symbols)).Str("file", args[0]).Msg("Symbols imported")
			if output.IsJSON() {
				return output.JSON(map[string]int{"imported": len(symbols)})
			}
			output.Success("Imported %d symbols from %s", len(symbols), args[0])
			return nil
		},
	}

	cmd.Flags().Bool("csv", false, "parse the file as CSV (symbol,name,sector)")
	return cmd
}

func readSymbolsText(path string) ([]models.StockInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open symbol file: %w", err)
	}
	defer f.Close()

	var symbols []models.StockInfo
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		sym := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if sym == "" || strings.HasPrefix(sym, "#") {
			continue
		}
		symbols = append(symbols, models.StockInfo{Symbol: sym})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read symbol file: %w", err)
	}
	return symbols, nil
}

func readSymbolsCSV(path string) ([]models.StockInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open symbol file: %w", err)
	}
	defer f.Close()

	var rows []*symbolRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	var symbols []models.StockInfo
	for _, row := range rows {
		sym := strings.ToUpper(strings.TrimSpace(row.Symbol))
		if sym == "" {
			continue
		}
		symbols = append(symbols, models.StockInfo{
			Symbol: sym,
			Name:   strings.TrimSpace(row.Name),
			Sector: strings.TrimSpace(row.Sector),
		})
	}
	return symbols, nil
}

func newSymbolsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the symbol universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			st, err := app.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			symbols, err := st.ListSymbols(cmd.Context())
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(symbols)
			}

			if len(symbols) == 0 {
				output.Info("No symbols in the universe. Use 'screener symbols import' to add some.")
				return nil
			}

			table := NewTable(output, "SYMBOL", "NAME", "SECTOR")
			for _, s := range symbols {
				table.AddRow(s.Symbol, orDash(s.Name), orDash(s.Sector))
			}
			table.Render()
			output.Printf("\n%d symbols\n", len(symbols))
			return nil
		},
	}
}

func newSymbolsEnrichCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "enrich",
		Short: "Fill in missing company names from the provider",
		Long: `Look up company metadata for symbols that were imported without a
name. Lookups are retried with backoff; symbols the provider does not
know stay as they are.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			st, err := app.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := cmd.Context()
			symbols, err := st.ListSymbols(ctx)
			if err != nil {
				return err
			}

			p := app.newProvider()
			retryCfg := utils.DefaultRetryConfig()

			var enriched, failed int
			for i, s := range symbols {
				if !output.IsJSON() {
					output.Progress(i+1, len(symbols), s.Symbol)
				}
				if s.Name != "" {
					continue
				}

				info, err := utils.RetryWithResult(ctx, retryCfg, func() (models.StockInfo, error) {
					return p.FetchInfo(ctx, s.Symbol)
				})
				if err != nil {
					app.Logger.Warn().Err(err).Str("symbol", s.Symbol).Msg("Enrichment lookup failed")
					failed++
					continue
				}
				if info.Name == "" {
					continue
				}

				s.Name = info.Name
				if s.Sector == "" {
					s.Sector = info.Sector
				}
				if err := st.UpdateSymbolInfo(ctx, s); err != nil {
					return err
				}
				enriched++

				// The provider rate-limits bursty metadata lookups.
				time.Sleep(100 * time.Millisecond)
			}

			app.Logger.Info().Int("enriched", enriched).Int("failed", failed).Msg("Enrichment finished")
			if output.IsJSON() {
				return output.JSON(map[string]int{"enriched": enriched, "failed": failed})
			}
			output.Success("Enriched %d of %d symbols (%d lookups failed)", enriched, len(symbols), failed)
			return nil
		},
	}
}
