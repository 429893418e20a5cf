package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/BobBjorklund/progressTracker/internal/models"
	"github.com/BobBjorklund/progressTracker/internal/wire"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage coachings, side-by-sides and tech monitors",
	Long: `Add, edit and delete an agent's records.

Kinds:
  coaching   coaching session (requires --notes)
  side       side-by-side (requires --notes)
  tech       tech monitor (requires --score)`,
}

var recordAddCmd = &cobra.Command{
	Use:   "add [agent]",
	Short: "Add a record (newest first)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecordUpsert(cmd, args[0], "")
	},
}

var recordEditCmd = &cobra.Command{
	Use:   "edit [agent]",
	Short: "Edit a record in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		if id == "" {
			return errMissingRecordID
		}
		return runRecordUpsert(cmd, args[0], id)
	},
}

func runRecordUpsert(cmd *cobra.Command, agentRef, recordID string) error {
	kind, _ := cmd.Flags().GetString("kind")
	date, _ := cmd.Flags().GetString("date")
	notes, _ := cmd.Flags().GetString("notes")
	score, _ := cmd.Flags().GetString("score")

	text := notes
	if k, ok := models.ParseRecordKind(kind); ok && k == models.KindTech {
		text = score
	}
	if text == "" {
		return errMissingText
	}

	return wire.TrackerAdapter().UpsertRecord(context.Background(), agentRef, kind, recordID, date, text)
}

var recordDeleteCmd = &cobra.Command{
	Use:   "delete [agent] [record-id]",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		yes, _ := cmd.Flags().GetBool("yes")
		return wire.TrackerAdapter().DeleteRecord(context.Background(), args[0], kind, args[1], yes)
	},
}

// RecordCmd returns the record command
func RecordCmd() *cobra.Command {
	for _, c := range []*cobra.Command{recordAddCmd, recordEditCmd} {
		c.Flags().StringP("kind", "k", "", "Record kind: coaching, side, tech (required)")
		c.Flags().StringP("date", "d", "", "Date (free text)")
		c.Flags().StringP("notes", "n", "", "Notes for coachings and side-by-sides")
		c.Flags().StringP("score", "s", "", "Score for tech monitors")
		_ = c.MarkFlagRequired("kind")
	}
	recordEditCmd.Flags().String("id", "", "Record id to edit (required)")
	recordDeleteCmd.Flags().StringP("kind", "k", "", "Record kind: coaching, side, tech (required)")
	recordDeleteCmd.Flags().BoolP("yes", "y", false, "Confirm deletion")
	_ = recordDeleteCmd.MarkFlagRequired("kind")

	recordCmd.AddCommand(recordAddCmd)
	recordCmd.AddCommand(recordEditCmd)
	recordCmd.AddCommand(recordDeleteCmd)

	return recordCmd
}
