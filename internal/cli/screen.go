package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/FrankTrani/Stock-Prediction/internal/models"
	"github.com/FrankTrani/Stock-Prediction/internal/scheduler"
	"github.com/FrankTrani/Stock-Prediction/internal/screen"
)

// addScreenCommands adds the screening pipeline commands.
func addScreenCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newScreenCmd(app))
	rootCmd.AddCommand(newRunCmd(app))
	rootCmd.AddCommand(newScheduleCmd(app))
}

// applyScreenFlags folds command-line overrides into the screening config.
func applyScreenFlags(cmd *cobra.Command, app *App) {
	if cmd.Flags().Changed("batch-size") {
		v, _ := cmd.Flags().GetInt("batch-size")
		app.Config.Screening.BatchSize = v
	}
	if cmd.Flags().Changed("period") {
		v, _ := cmd.Flags().GetString("period")
		app.Config.Screening.Period = v
	}
	if cmd.Flags().Changed("alpha") {
		v, _ := cmd.Flags().GetFloat64("alpha")
		app.Config.Screening.SignificanceLevel = v
	}
}

func addScreenFlags(cmd *cobra.Command) {
	cmd.Flags().Int("batch-size", 0, "symbols per provider request batch")
	cmd.Flags().String("period", "", "trailing price history window (1mo, 3mo, 6mo, 1y, 2y)")
	cmd.Flags().Float64("alpha", 0, "Shapiro-Wilk significance level")
}

// executeScreen runs one full screening pass: reset the run tables, load
// the universe, drive the pipeline, and print the summary.
func executeScreen(ctx context.Context, app *App, output *Output) (*models.RunSummary, error) {
	if err := app.Config.Validate(); err != nil {
		return nil, err
	}

	st, err := app.openStore()
	if err != nil {
		return nil, err
	}
	defer st.Close()

	if err := st.InitSchema(ctx); err != nil {
		return nil, err
	}
	if err := st.ResetRun(ctx); err != nil {
		return nil, err
	}

	universe, err := st.ListSymbols(ctx)
	if err != nil {
		return nil, err
	}
	if len(universe) == 0 {
		return nil, fmt.Errorf("the symbol universe is empty; run 'screener symbols import' first")
	}

	pipeline := screen.NewPipeline(app.newProvider(), st, app.Config.Screening, app.Logger)
	if output != nil && !output.IsJSON() {
		pipeline.SetProgress(func(done, total int) {
			output.Progress(done, total, "screening")
		})
	}

	summary, err := pipeline.Run(ctx, universe)
	if err != nil {
		return nil, err
	}

	if output != nil {
		printSummary(output, summary)
	}
	return summary, nil
}

func printSummary(output *Output, summary *models.RunSummary) {
	if output.IsJSON() {
		output.JSON(summary)
		return
	}
	output.Println()
	output.Bold("Screening Summary")
	output.Printf("  Universe:  %d symbols\n", summary.Universe)
	output.Printf("  Screened:  %d (after static filters)\n", summary.Filtered)
	output.Printf("  Scored:    %s\n", output.Green(fmt.Sprintf("%d", summary.Scored)))
	output.Printf("  Excluded:  %s\n", output.Red(fmt.Sprintf("%d", summary.Excluded)))
	output.Printf("  Batches:   %d\n", summary.Batches)
	output.Printf("  Duration:  %s\n", FormatDuration(summary.Duration))
}

func newScreenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen the symbol universe",
		Long: `Run the screening pipeline over the stored symbol universe.

Each batch of symbols is fetched from the market data provider, log
returns are tested for normality, and plausibly normal symbols receive a
Z-score for their latest close. Results replace the previous run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyScreenFlags(cmd, app)
			output := NewOutput(cmd)
			_, err := executeScreen(cmd.Context(), app, output)
			return err
		},
	}
	addScreenFlags(cmd)
	return cmd
}

func newRunCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Screen the universe and report candidates",
		Long:  "Run the full cycle: screen the stored universe, then print the candidate report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			applyScreenFlags(cmd, app)
			output := NewOutput(cmd)

			if _, err := executeScreen(cmd.Context(), app, output); err != nil {
				return err
			}
			if output.IsJSON() {
				return nil
			}
			output.Println()
			return reportCandidates(cmd.Context(), app, output, app.Config.Report.MaxZScore)
		},
	}
	addScreenFlags(cmd)
	return cmd
}

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the screen on a recurring schedule",
		Long: `Keep the process running and execute a screening pass on a cron
schedule. The default spec runs on weekday evenings after the close.
Stop with Ctrl-C; a pass in flight finishes before shutdown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyScreenFlags(cmd, app)
			output := NewOutput(cmd)
			spec, _ := cmd.Flags().GetString("cron")

			sched := scheduler.New(app.Logger)
			err := sched.Register(spec, func() {
				summary, err := executeScreen(context.Background(), app, nil)
				if err != nil {
					app.Logger.Error().Err(err).Msg("Scheduled screening run failed")
					return
				}
				app.Logger.Info().
					Int("scored", summary.Scored).
					Int("excluded", summary.Excluded).
					Msg("Scheduled screening run finished")
			})
			if err != nil {
				return err
			}

			sched.Start()
			output.Info("Scheduler running (%s). Press Ctrl-C to stop.", spec)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			output.Println()
			output.Info("Shutting down...")
			sched.Stop()
			return nil
		},
	}

	cmd.Flags().String("cron", "0 18 * * 1-5", "cron spec for the screening run")
	addScreenFlags(cmd)
	return cmd
}
