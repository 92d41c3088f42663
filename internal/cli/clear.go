package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"quizdojo/internal/app"
	"quizdojo/internal/state"
)

func newClearCmd(cfg *app.Config) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every leaderboard record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "state.db"))
			if err != nil {
				return err
			}
			defer store.Close()
			ctx := cmd.Context()
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
			if err := store.ClearRecords(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "leaderboard cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the deletion")
	return cmd
}
