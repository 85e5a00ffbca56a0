package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/archmap/internal/export"
	"github.com/ziadkadry99/archmap/internal/progress"
	"github.com/ziadkadry99/archmap/internal/report"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export the render graph to a SQLite database",
	Long: `Builds the render graph of FILE, or of the server's current report when FILE
is omitted, and appends it as a snapshot to the SQLite database at --out.
Each snapshot stores nodes with role, size and degree, and links with a
flag for endpoints that name no node.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}

		var r *report.Report
		if len(args) == 1 {
			if r, _, err = readReport(args[0]); err != nil {
				return err
			}
		} else {
			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}
			if r, err = client.Fetch(cmd.Context()); err != nil {
				return fmt.Errorf("fetching report: %w", err)
			}
			if r == nil {
				return fmt.Errorf("the server at %s holds no report", cfg.Client.URL)
			}
		}

		snap, err := export.File(cmd.Context(), exportOut, r, progress.NewReporter(os.Stderr, "Exporting "+r.ProjectName))
		if err != nil {
			return fmt.Errorf("exporting graph: %w", err)
		}
		fmt.Printf("Exported %s: %d nodes, %d links\n", snap.ProjectName, snap.NodeCount, snap.LinkCount)
		fmt.Printf("  Database: %s\n", exportOut)
		fmt.Printf("  Snapshot: %s\n", snap.ID)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "archmap.db", "SQLite database to write")
	rootCmd.AddCommand(exportCmd)
}
