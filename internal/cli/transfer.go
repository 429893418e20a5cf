package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/BobBjorklund/progressTracker/internal/wire"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import coaching reports or roster exports",
}

var importReportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Reconcile a coaching report (.xlsx or .csv) into the roster",
	Long: `Reconcile a coaching report into the roster.

The first worksheet is read. Rows need Id, Agent Name and Coaching Form Name
columns; forms mentioning "side" become side-by-sides and forms mentioning
"coaching" become coachings. Rows already imported are skipped, so the same
report can be imported repeatedly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read report: %w", err)
		}
		return wire.TrackerAdapter().ImportReport(context.Background(), data, filepath.Base(args[0]))
	},
}

var importJSONCmd = &cobra.Command{
	Use:   "json [file]",
	Short: "Replace the roster with an export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		return wire.TrackerAdapter().ImportJSON(context.Background(), data, filepath.Base(args[0]), yes)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the roster to agent-tracker_YYYY-MM-DD.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		return wire.TrackerAdapter().Export(context.Background(), out)
	},
}

// ImportCmd returns the import command
func ImportCmd() *cobra.Command {
	importJSONCmd.Flags().BoolP("yes", "y", false, "Confirm replacing the roster")

	importCmd.AddCommand(importReportCmd)
	importCmd.AddCommand(importJSONCmd)
	return importCmd
}

// ExportCmd returns the export command
func ExportCmd() *cobra.Command {
	exportCmd.Flags().StringP("out", "o", "", "Output file or directory (default: current directory)")
	return exportCmd
}
