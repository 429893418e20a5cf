package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/BobBjorklund/progressTracker/internal/wire"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage tracked agents",
	Long: `Add, edit, list and remove agents.

Agents can be referenced by id or by exact name (case-insensitive).`,
}

var agentAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		requirement := wire.Config().DefaultRequirement
		if cmd.Flags().Changed("requirement") {
			requirement, _ = cmd.Flags().GetInt("requirement")
		}
		return wire.TrackerAdapter().AddAgent(context.Background(), args[0], requirement)
	},
}

var agentEditCmd = &cobra.Command{
	Use:   "edit [agent]",
	Short: "Rename an agent or change their side-by-side requirement",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")

		var requirement *int
		if cmd.Flags().Changed("requirement") {
			n, _ := cmd.Flags().GetInt("requirement")
			requirement = &n
		}
		if name == "" && requirement == nil {
			return errMissingEditFlags
		}

		return wire.TrackerAdapter().EditAgent(context.Background(), args[0], name, requirement)
	},
}

var agentDeleteCmd = &cobra.Command{
	Use:   "delete [agent]",
	Short: "Delete an agent and all of their records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return wire.TrackerAdapter().DeleteAgent(context.Background(), args[0], yes)
	},
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List agents with completion and score",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		sortKey, _ := cmd.Flags().GetString("sort")
		desc, _ := cmd.Flags().GetBool("desc")

		direction := "asc"
		if desc {
			direction = "desc"
		}
		return wire.TrackerAdapter().List(context.Background(), search, sortKey, direction)
	},
}

var agentShowCmd = &cobra.Command{
	Use:   "show [agent]",
	Short: "Show an agent with all records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.TrackerAdapter().Show(context.Background(), args[0])
	},
}

// AgentCmd returns the agent command
func AgentCmd() *cobra.Command {
	agentAddCmd.Flags().IntP("requirement", "r", 0, "Side-by-side requirement, 0-99 (default from config)")
	agentEditCmd.Flags().StringP("name", "n", "", "New name")
	agentEditCmd.Flags().IntP("requirement", "r", 0, "New side-by-side requirement, 0-99")
	agentDeleteCmd.Flags().BoolP("yes", "y", false, "Confirm deletion")
	agentListCmd.Flags().StringP("search", "s", "", "Filter by name substring")
	agentListCmd.Flags().String("sort", "name", "Sort key (name, completion, score, coachings, sides, techs, requirement, followups)")
	agentListCmd.Flags().Bool("desc", false, "Sort descending")

	agentCmd.AddCommand(agentAddCmd)
	agentCmd.AddCommand(agentEditCmd)
	agentCmd.AddCommand(agentDeleteCmd)
	agentCmd.AddCommand(agentListCmd)
	agentCmd.AddCommand(agentShowCmd)

	return agentCmd
}
