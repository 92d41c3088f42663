package cli

import (
	"github.com/spf13/cobra"

	"quizdojo/internal/app"
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg, err := app.FromEnv()
	if err != nil {
		cfg = app.DefaultConfig()
	}

	cmd := &cobra.Command{
		Use:   "quizdojo",
		Short: "Timed terminal quiz with a local leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.BankPath, "bank", cfg.BankPath, "path to the question bank (json or yaml)")
	flags.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the state database and exports")
	flags.StringVar(&cfg.LogPath, "log", cfg.LogPath, "structured log file (empty disables logging)")
	flags.IntVar(&cfg.Quiz.TimeBudgetSec, "budget", cfg.Quiz.TimeBudgetSec, "time budget per quiz in seconds")
	flags.IntVar(&cfg.Quiz.QuestionCount, "count", cfg.Quiz.QuestionCount, "questions drawn per quiz")
	flags.IntVar(&cfg.Quiz.TopN, "top", cfg.Quiz.TopN, "leaderboard slots per difficulty")
	flags.StringVar(&cfg.UI.StyleVariant, "style", cfg.UI.StyleVariant, "ui style: modern_arcade, cozy_clean, retro_terminal")

	cmd.AddCommand(newExportCmd(&cfg))
	cmd.AddCommand(newClearCmd(&cfg))
	return cmd
}
