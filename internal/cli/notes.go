package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/BobBjorklund/progressTracker/internal/wire"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage free-text notes on an agent",
}

var notesSetCmd = &cobra.Command{
	Use:   "set [agent] [text...]",
	Short: "Overwrite an agent's notes (empty text clears them)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.TrackerAdapter().SetNotes(context.Background(), args[0], strings.Join(args[1:], " "))
	},
}

var followupCmd = &cobra.Command{
	Use:   "followup",
	Short: "Manage follow-up items on an agent",
}

var followupAddCmd = &cobra.Command{
	Use:   "add [agent] [text...]",
	Short: "Add a follow-up (newest first)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.TrackerAdapter().UpsertFollowUp(context.Background(), args[0], "", strings.Join(args[1:], " "))
	},
}

var followupEditCmd = &cobra.Command{
	Use:   "edit [agent] [text...]",
	Short: "Edit a follow-up in place",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		if id == "" {
			return errMissingRecordID
		}
		return wire.TrackerAdapter().UpsertFollowUp(context.Background(), args[0], id, strings.Join(args[1:], " "))
	},
}

var followupDeleteCmd = &cobra.Command{
	Use:   "delete [agent] [item-id]",
	Short: "Delete a follow-up",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		return wire.TrackerAdapter().DeleteFollowUp(context.Background(), args[0], args[1], yes)
	},
}

// NotesCmd returns the notes command
func NotesCmd() *cobra.Command {
	notesCmd.AddCommand(notesSetCmd)
	return notesCmd
}

// FollowUpCmd returns the followup command
func FollowUpCmd() *cobra.Command {
	followupEditCmd.Flags().String("id", "", "Follow-up id to edit (required)")
	followupDeleteCmd.Flags().BoolP("yes", "y", false, "Confirm deletion")

	followupCmd.AddCommand(followupAddCmd)
	followupCmd.AddCommand(followupEditCmd)
	followupCmd.AddCommand(followupDeleteCmd)

	return followupCmd
}
