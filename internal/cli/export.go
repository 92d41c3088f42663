package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"quizdojo/internal/app"
	"quizdojo/internal/export"
	"quizdojo/internal/state"
)

// newExportCmd writes the leaderboard to a file without starting the
// TUI, for cron jobs and sharing.
func newExportCmd(cfg *app.Config) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the leaderboard to CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			records, err := store.LoadRecords(ctx)
			if err != nil {
				return err
			}
			var path string
			switch format {
			case "json":
				path, err = export.WriteJSON(cfg.ExportDir, records, time.Now())
			case "csv":
				path, err = export.WriteCSV(cfg.ExportDir, records, time.Now())
			default:
				return fmt.Errorf("unknown format %q, want csv or json", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(records), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "export format: csv or json")
	return cmd
}
