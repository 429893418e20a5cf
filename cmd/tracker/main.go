package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BobBjorklund/progressTracker/internal/cli"
	"github.com/BobBjorklund/progressTracker/internal/version"
	"github.com/BobBjorklund/progressTracker/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tracker",
		Short:   "Track coachings, side-by-sides and tech monitors per agent",
		Version: version.String(),
		Long: `tracker keeps a roster of agents and the coaching activity logged against them.
It scores each agent against their side-by-side requirement and reconciles
exported coaching reports into the roster.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Roster
	rootCmd.AddCommand(cli.AgentCmd())
	rootCmd.AddCommand(cli.RecordCmd())
	rootCmd.AddCommand(cli.NotesCmd())
	rootCmd.AddCommand(cli.FollowUpCmd())
	rootCmd.AddCommand(cli.TotalsCmd())

	// Period and persistence
	rootCmd.AddCommand(cli.PeriodCmd())
	rootCmd.AddCommand(cli.ClearCmd())
	rootCmd.AddCommand(cli.SaveCmd())

	// Import / export
	rootCmd.AddCommand(cli.ImportCmd())
	rootCmd.AddCommand(cli.ExportCmd())

	// Settings
	rootCmd.AddCommand(cli.ConfigCmd())

	err := rootCmd.Execute()
	wire.Shutdown()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
