package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/BobBjorklund/progressTracker/internal/wire"
)

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Manage the tracking period",
}

var periodResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start a new period: clear all records, keep agents, notes and follow-ups",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return wire.TrackerAdapter().ResetPeriod(context.Background(), yes)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every agent and record",
	Long: `Delete every agent and record.

The pre-migration backup, if one exists, is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return wire.TrackerAdapter().ClearAll(context.Background(), yes)
	},
}

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show roster-wide counts and completion",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.TrackerAdapter().Totals(context.Background())
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the current roster to storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.TrackerAdapter().Save(context.Background())
	},
}

// PeriodCmd returns the period command
func PeriodCmd() *cobra.Command {
	periodResetCmd.Flags().BoolP("yes", "y", false, "Confirm the reset")
	periodCmd.AddCommand(periodResetCmd)
	return periodCmd
}

// ClearCmd returns the clear command
func ClearCmd() *cobra.Command {
	clearCmd.Flags().BoolP("yes", "y", false, "Confirm clearing all data")
	return clearCmd
}

// TotalsCmd returns the totals command
func TotalsCmd() *cobra.Command {
	return totalsCmd
}

// SaveCmd returns the save command
func SaveCmd() *cobra.Command {
	return saveCmd
}
