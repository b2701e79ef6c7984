package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// addReportCommands adds reporting and database setup commands.
func addReportCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newReportCmd(app))
	rootCmd.AddCommand(newInitDBCmd(app))
}

// reportCandidates prints the scored symbols at or below the Z-score
// threshold, most extreme last.
func reportCandidates(ctx context.Context, app *App, output *Output, maxZ float64) error {
	st, err := app.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	candidates, err := st.Candidates(ctx, maxZ)
	if err != nil {
		return err
	}

	if output.IsJSON() {
		return output.JSON(candidates)
	}

	if len(candidates) == 0 {
		output.Info("No candidates at or below z = %.2f in the latest run.", maxZ)
		return nil
	}

	output.Bold("Candidates (z <= %.2f)", maxZ)
	table := NewTable(output, "SYMBOL", "NAME", "Z-SCORE")
	for _, c := range candidates {
		table.AddRow(c.Symbol, orDash(c.Name), output.Red(FormatZScore(c.ZScore)))
	}
	table.Render()
	output.Printf("\n%d candidates\n", len(candidates))
	return nil
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report candidates from the latest run",
		Long: `Print the symbols from the latest screening run whose latest close sits
at or below the Z-score threshold. These are the statistically depressed
prices among the plausibly normal symbols.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			maxZ := app.Config.Report.MaxZScore
			if cmd.Flags().Changed("max-z") {
				maxZ, _ = cmd.Flags().GetFloat64("max-z")
			}
			return reportCandidates(cmd.Context(), app, output, maxZ)
		},
	}

	cmd.Flags().Float64("max-z", 0, "Z-score threshold for candidates")
	return cmd
}

func newInitDBCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			st, err := app.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.InitSchema(cmd.Context()); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"database": app.Config.Database.Path, "status": "initialized"})
			}
			output.Success("Database initialized at %s", app.Config.Database.Path)
			return nil
		},
	}
}
