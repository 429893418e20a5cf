// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/BobBjorklund/progressTracker/internal/models"
	"github.com/BobBjorklund/progressTracker/internal/ports/primary"
)

// TrackerAdapter is a thin adapter that translates CLI operations to TrackerService calls.
// It depends only on the TrackerService interface, enabling easy testing with mocks.
type TrackerAdapter struct {
	service primary.TrackerService
	out     io.Writer
}

// NewTrackerAdapter creates a new TrackerAdapter with the given service.
func NewTrackerAdapter(service primary.TrackerService, out io.Writer) *TrackerAdapter {
	return &TrackerAdapter{
		service: service,
		out:     out,
	}
}

// tierColors maps tier names onto the nearest terminal colors.
var tierColors = map[string]color.Attribute{
	"critical":  color.FgRed,
	"behind":    color.FgHiRed,
	"on-track":  color.FgYellow,
	"complete":  color.FgGreen,
	"exceeding": color.FgBlue,
}

func tierLabel(tier string) string {
	if attr, ok := tierColors[tier]; ok {
		return color.New(attr).Sprint(tier)
	}
	return tier
}

// AddAgent adds an agent.
func (a *TrackerAdapter) AddAgent(ctx context.Context, name string, requirement int) error {
	resp, err := a.service.AddAgent(ctx, primary.AddAgentRequest{Name: name, Requirement: requirement})
	if err != nil {
		return err
	}
	if !resp.Applied {
		return fmt.Errorf("agent name cannot be blank")
	}

	fmt.Fprintf(a.out, "✓ Added agent %s (requirement %d)\n", resp.Agent.Name, resp.Agent.Requirement)
	fmt.Fprintf(a.out, "  ID: %s\n", resp.Agent.ID)
	return nil
}

// EditAgent renames an agent and/or changes its requirement.
// A nil requirement keeps the current value.
func (a *TrackerAdapter) EditAgent(ctx context.Context, ref, name string, requirement *int) error {
	row, err := a.resolveAgent(ctx, ref)
	if err != nil {
		return err
	}

	req := primary.EditAgentRequest{AgentID: row.Agent.ID, Name: row.Agent.Name, Requirement: row.Agent.Requirement}
	if name != "" {
		req.Name = name
	}
	if requirement != nil {
		req.Requirement = *requirement
	}

	resp, err := a.service.EditAgent(ctx, req)
	if err != nil {
		return err
	}
	if !resp.Applied {
		return fmt.Errorf("agent name cannot be blank")
	}

	fmt.Fprintf(a.out, "✓ Agent %s updated\n", strings.TrimSpace(req.Name))
	return nil
}

// DeleteAgent removes an agent and all of its records.
func (a *TrackerAdapter) DeleteAgent(ctx context.Context, ref string, confirmed bool) error {
	row, err := a.resolveAgent(ctx, ref)
	if err != nil {
		return err
	}

	_, err = a.service.DeleteAgent(ctx, primary.DeleteAgentRequest{AgentID: row.Agent.ID, Confirmed: confirmed})
	if errors.Is(err, primary.ErrConfirmationRequired) {
		return a.needsConfirmation(fmt.Sprintf("delete agent %s and all of their records", row.Agent.Name))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Deleted agent %s\n", row.Agent.Name)
	return nil
}

// List prints the roster as a table.
func (a *TrackerAdapter) List(ctx context.Context, search, sortKey, direction string) error {
	rows, err := a.service.ListAgents(ctx, primary.ListAgentsRequest{
		Search:    search,
		SortKey:   sortKey,
		Direction: direction,
	})
	if err != nil {
		return fmt.Errorf("failed to list agents: %w", err)
	}

	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No agents found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tREQ\tCOACHINGS\tSIDES\tTECHS\tFOLLOW-UPS\tCOMPLETION\tSCORE\tTIER")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%.0f%%\t%.0f\t%s\n",
			r.Agent.Name,
			r.Agent.Requirement,
			len(r.Agent.Coachings),
			len(r.Agent.Sides),
			len(r.Agent.Techs),
			len(r.Agent.FollowUps),
			r.Completion,
			r.Score,
			tierLabel(r.Tier),
		)
	}
	return w.Flush()
}

// Show displays one agent with all records.
func (a *TrackerAdapter) Show(ctx context.Context, ref string) error {
	row, err := a.resolveAgent(ctx, ref)
	if err != nil {
		return err
	}
	ag := row.Agent

	fmt.Fprintf(a.out, "\nAgent: %s\n", ag.Name)
	fmt.Fprintf(a.out, "ID:          %s\n", ag.ID)
	fmt.Fprintf(a.out, "Requirement: %d\n", ag.Requirement)
	fmt.Fprintf(a.out, "Completion:  %.0f%%\n", row.Completion)
	fmt.Fprintf(a.out, "Score:       %.0f (%s)\n", row.Score, tierLabel(row.Tier))

	a.printInteractions("Coachings", ag.Coachings)
	a.printInteractions("Side-by-sides", ag.Sides)

	fmt.Fprintf(a.out, "\nTech monitors (%d):\n", len(ag.Techs))
	for _, r := range ag.Techs {
		fmt.Fprintf(a.out, "  %s  %-12s score %s\n", r.ID, r.Date, r.Score)
	}

	fmt.Fprintf(a.out, "\nFollow-ups (%d):\n", len(ag.FollowUps))
	for _, f := range ag.FollowUps {
		fmt.Fprintf(a.out, "  %s  %s\n", f.ID, f.Text)
	}

	if ag.Notes != "" {
		fmt.Fprintf(a.out, "\nNotes:\n%s\n", ag.Notes)
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *TrackerAdapter) printInteractions(title string, records []models.InteractionRecord) {
	fmt.Fprintf(a.out, "\n%s (%d):\n", title, len(records))
	for _, r := range records {
		fmt.Fprintf(a.out, "  %s  %-12s %s\n", r.ID, r.Date, r.Notes)
	}
}

// UpsertRecord adds a record, or edits it when recordID is set.
// text is the notes for coachings and sides and the score for techs.
func (a *TrackerAdapter) UpsertRecord(ctx context.Context, ref, kind, recordID, date, text string) error {
	k, ok := models.ParseRecordKind(kind)
	if !ok {
		return fmt.Errorf("%w: %s\nValid kinds: coaching, side, tech", primary.ErrInvalidRecordKind, kind)
	}
	row, err := a.resolveAgent(ctx, ref)
	if err != nil {
		return err
	}
	// an edit never creates a record
	if recordID != "" && !row.Agent.HasRecord(k, recordID) {
		return fmt.Errorf("%s %s not found for %s", k, recordID, row.Agent.Name)
	}

	req := primary.UpsertRecordRequest{AgentID: row.Agent.ID, Kind: k, RecordID: recordID, Date: date}
	if k == models.KindTech {
		req.Score = text
	} else {
		req.Notes = text
	}

	resp, err := a.service.UpsertRecord(ctx, req)
	if err != nil {
		return err
	}
	if !resp.Applied {
		if k == models.KindTech {
			return fmt.Errorf("score cannot be blank")
		}
		return fmt.Errorf("notes cannot be blank")
	}

	verb := "Added"
	if recordID != "" {
		verb = "Saved"
	}
	fmt.Fprintf(a.out, "✓ %s %s %s for %s\n", verb, k, resp.RecordID, row.Agent.Name)
	return nil
}

// DeleteRecord removes a record.
func (a *TrackerAdapter) DeleteRecord(ctx context.Context, ref, kind, recordID string, confirmed bool) error {
	k, ok := models.ParseRecordKind(kind)
	if !ok {
		return fmt.Errorf("%w: %s\nValid kinds: coaching, side, tech", primary.ErrInvalidRecordKind, kind)
	}
	row, err := a.resolveAgent(ctx, ref)
	if err != nil {
		return err
	}

	resp, err := a.service.DeleteRecord(ctx, primary.DeleteRecordRequest{
		AgentID:   row.Agent.ID,
		Kind:      k,
		RecordID:  recordID,
		Confirmed: confirmed,
	})
	if errors.Is(err, primary.ErrConfirmationRequired) {
		return a.needsConfirmation(fmt.Sprintf("delete %s %s from %s", k, recordID, row.Agent.Name))
	}
	if err != nil {
		return err
	}
	if !resp.Applied {
		return fmt.Errorf("%s %s not found for %s", k, recordID, row.Agent.Name)
	}

	fmt.Fprintf(a.out, "✓ Deleted %s %s\n", k, recordID)
	return nil
}

// SetNotes overwrites an agent's notes.
func (a *TrackerAdapter) SetNotes(ctx context.Context, ref, text string) error {
	row, err := a.resolveAgent(ctx, ref)
	if err != nil {
		return err
	}
	if _, err := a.service.SetNotes(ctx, primary.SetNotesRequest{AgentID: row.Agent.ID, Text: text}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Notes saved for %s\n", row.Agent.Name)
	return nil
}

// UpsertFollowUp adds a follow-up, or edits it when itemID is set.
func (a *TrackerAdapter) UpsertFollowUp(ctx context.Context, ref, itemID, text string) error {
	row, err := a.resolveAgent(ctx, ref)
	if err != nil {
		return err
	}
	if itemID != "" && !row.Agent.HasFollowUp(itemID) {
		return fmt.Errorf("follow-up %s not found for %s", itemID, row.Agent.Name)
	}

	resp, err := a.service.UpsertFollowUp(ctx, primary.UpsertFollowUpRequest{AgentID: row.Agent.ID, ItemID: itemID, Text: text})
	if err != nil {
		return err
	}
	if !resp.Applied {
		return fmt.Errorf("follow-up text cannot be blank")
	}

	fmt.Fprintf(a.out, "✓ Follow-up %s saved for %s\n", resp.ItemID, row.Agent.Name)
	return nil
}

// DeleteFollowUp removes a follow-up.
func (a *TrackerAdapter) DeleteFollowUp(ctx context.Context, ref, itemID string, confirmed bool) error {
	row, err := a.resolveAgent(ctx, ref)
	if err != nil {
		return err
	}

	resp, err := a.service.DeleteFollowUp(ctx, primary.DeleteFollowUpRequest{AgentID: row.Agent.ID, ItemID: itemID, Confirmed: confirmed})
	if errors.Is(err, primary.ErrConfirmationRequired) {
		return a.needsConfirmation(fmt.Sprintf("delete follow-up %s from %s", itemID, row.Agent.Name))
	}
	if err != nil {
		return err
	}
	if !resp.Applied {
		return fmt.Errorf("follow-up %s not found for %s", itemID, row.Agent.Name)
	}

	fmt.Fprintf(a.out, "✓ Deleted follow-up %s\n", itemID)
	return nil
}

// ResetPeriod clears every record for a new period.
func (a *TrackerAdapter) ResetPeriod(ctx context.Context, confirmed bool) error {
	_, err := a.service.ResetPeriod(ctx, primary.ConfirmRequest{Confirmed: confirmed})
	if errors.Is(err, primary.ErrConfirmationRequired) {
		return a.needsConfirmation("clear all coachings, side-by-sides and tech monitors (agents, notes and follow-ups are kept)")
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "✓ Records cleared for a new period")
	return nil
}

// ClearAll removes every agent.
func (a *TrackerAdapter) ClearAll(ctx context.Context, confirmed bool) error {
	_, err := a.service.ClearAll(ctx, primary.ConfirmRequest{Confirmed: confirmed})
	if errors.Is(err, primary.ErrConfirmationRequired) {
		return a.needsConfirmation("delete every agent and record")
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "✓ All data cleared")
	return nil
}

// ImportReport reconciles a coaching report file.
func (a *TrackerAdapter) ImportReport(ctx context.Context, data []byte, filename string) error {
	resp, err := a.service.ImportReport(ctx, primary.ImportReportRequest{Data: data, Filename: filename})
	if err != nil {
		return err
	}
	if resp.NoData {
		fmt.Fprintf(a.out, "No rows found in %s\n", filename)
		return nil
	}

	fmt.Fprintf(a.out, "✓ Imported %d record(s) from %s (sheet %q)\n", resp.Imported, filename, resp.Sheet)
	fmt.Fprintf(a.out, "  Rows read: %d\n", resp.RowsRead)
	fmt.Fprintf(a.out, "  Skipped (already imported): %d\n", resp.Skipped)
	return nil
}

// ImportJSON replaces the roster with an export file.
func (a *TrackerAdapter) ImportJSON(ctx context.Context, data []byte, filename string, confirmed bool) error {
	resp, err := a.service.ImportJSON(ctx, primary.ImportJSONRequest{Data: data, Confirmed: confirmed})
	if errors.Is(err, primary.ErrConfirmationRequired) {
		return a.needsConfirmation(fmt.Sprintf("replace the current roster with the contents of %s", filename))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Loaded %d agent(s) from %s\n", resp.Agents, filename)
	return nil
}

// Export writes an export document. An empty out writes the default
// filename into the current directory; a directory gets the default filename inside it.
func (a *TrackerAdapter) Export(ctx context.Context, out string) error {
	resp, err := a.service.ExportJSON(ctx)
	if err != nil {
		return err
	}

	path := out
	if path == "" {
		path = resp.Filename
	} else if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, resp.Filename)
	}

	if err := os.WriteFile(path, resp.Data, 0644); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Exported roster to %s\n", path)
	return nil
}

// Totals prints roster-wide counts.
func (a *TrackerAdapter) Totals(ctx context.Context) error {
	t, err := a.service.Totals(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Agents:        %d\n", t.Agents)
	fmt.Fprintf(a.out, "Coachings:     %d\n", t.Coachings)
	fmt.Fprintf(a.out, "Side-by-sides: %d\n", t.Sides)
	fmt.Fprintf(a.out, "Tech monitors: %d\n", t.Techs)
	fmt.Fprintf(a.out, "Requirement:   %d\n", t.Requirement)
	fmt.Fprintf(a.out, "Completion:    %.0f%%\n", t.Percent)
	return nil
}

// Save writes the roster to storage.
func (a *TrackerAdapter) Save(ctx context.Context) error {
	if err := a.service.Save(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "✓ Saved")
	return nil
}

// resolveAgent finds an agent by id, then by exact (case-insensitive) name.
func (a *TrackerAdapter) resolveAgent(ctx context.Context, ref string) (*primary.AgentRow, error) {
	row, err := a.service.GetAgent(ctx, ref)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, primary.ErrAgentNotFound) {
		return nil, err
	}

	rows, err := a.service.ListAgents(ctx, primary.ListAgentsRequest{Search: ref})
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.Agent.Name), strings.TrimSpace(ref)) {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", primary.ErrAgentNotFound, ref)
}

func (a *TrackerAdapter) needsConfirmation(action string) error {
	fmt.Fprintf(a.out, "This will %s.\n", action)
	fmt.Fprintln(a.out, "Re-run with --yes to confirm.")
	return nil
}
