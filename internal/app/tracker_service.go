package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BobBjorklund/progressTracker/internal/core/identity"
	"github.com/BobBjorklund/progressTracker/internal/core/migrate"
	"github.com/BobBjorklund/progressTracker/internal/core/reconcile"
	"github.com/BobBjorklund/progressTracker/internal/core/roster"
	"github.com/BobBjorklund/progressTracker/internal/core/scoring"
	"github.com/BobBjorklund/progressTracker/internal/core/view"
	"github.com/BobBjorklund/progressTracker/internal/models"
	"github.com/BobBjorklund/progressTracker/internal/ports/primary"
	"github.com/BobBjorklund/progressTracker/internal/ports/secondary"
)

// ExportVersion is written into every export document.
const ExportVersion = 1

// exportTimeLayout is RFC 3339 in UTC with millisecond precision.
const exportTimeLayout = "2006-01-02T15:04:05.000Z"

// exportDocument is the JSON export file layout.
type exportDocument struct {
	Version    int            `json:"version"`
	ExportedAt string         `json:"exportedAt"`
	Agents     []models.Agent `json:"agents"`
}

// TrackerServiceImpl implements the TrackerService interface.
type TrackerServiceImpl struct {
	kv     secondary.KeyValueStore
	reader secondary.ReportReader
	logger *zap.Logger
	store  *roster.Store
	now    func() time.Time
}

// NewTrackerService creates a new TrackerService with injected dependencies.
// The roster starts empty; call Load to read persisted state.
func NewTrackerService(kv secondary.KeyValueStore, reader secondary.ReportReader, logger *zap.Logger) *TrackerServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackerServiceImpl{
		kv:     kv,
		reader: reader,
		logger: logger,
		store:  roster.New(nil),
		now:    time.Now,
	}
}

// Load reads the persisted roster, migrating (and backing up) legacy blobs.
func (s *TrackerServiceImpl) Load(ctx context.Context) (*primary.LoadResult, error) {
	blob, found, err := s.kv.Get(ctx, secondary.AgentsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	var raw any
	if found {
		raw, err = migrate.Decode([]byte(blob))
		if err != nil {
			s.logger.Warn("persisted roster is not valid JSON, starting empty", zap.Error(err))
			raw = nil
		}
	}

	agents := migrate.Migrate(raw)
	s.store.Replace(agents)
	result := &primary.LoadResult{Agents: len(agents)}

	if !found || !migrate.IsLegacy(raw) {
		return result, nil
	}

	_, hasBackup, err := s.kv.Get(ctx, secondary.BackupKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check backup: %w", err)
	}
	if !hasBackup {
		if err := s.kv.Set(ctx, secondary.BackupKey, blob); err != nil {
			return nil, fmt.Errorf("failed to write backup: %w", err)
		}
		result.BackupWritten = true
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	result.Migrated = true

	s.logger.Info("migrated legacy roster",
		zap.Int("agents", result.Agents),
		zap.Bool("backup_written", result.BackupWritten))
	return result, nil
}

// Save writes the current roster unconditionally.
func (s *TrackerServiceImpl) Save(ctx context.Context) error {
	return s.persist(ctx)
}

// AddAgent adds an agent to the roster.
func (s *TrackerServiceImpl) AddAgent(ctx context.Context, req primary.AddAgentRequest) (*primary.AddAgentResponse, error) {
	if existing, ok := s.store.FindByName(req.Name); ok && !identity.IsBlank(req.Name) {
		return nil, fmt.Errorf("%w: %s", primary.ErrDuplicateName, existing.Name)
	}

	var added models.Agent
	applied, err := s.mutate(ctx, "add agent", func() bool {
		var ok bool
		added, ok = s.store.AddAgent(req.Name, req.Requirement)
		return ok
	})
	if err != nil || !applied {
		return &primary.AddAgentResponse{}, err
	}
	return &primary.AddAgentResponse{Applied: true, Agent: &added}, nil
}

// EditAgent updates an agent's name and requirement.
func (s *TrackerServiceImpl) EditAgent(ctx context.Context, req primary.EditAgentRequest) (*primary.MutationResult, error) {
	if _, err := s.requireAgent(req.AgentID); err != nil {
		return nil, err
	}
	if existing, ok := s.store.FindByName(req.Name); ok && existing.ID != req.AgentID && !identity.IsBlank(req.Name) {
		return nil, fmt.Errorf("%w: %s", primary.ErrDuplicateName, existing.Name)
	}

	applied, err := s.mutate(ctx, "edit agent", func() bool {
		return s.store.EditAgent(req.AgentID, req.Name, req.Requirement)
	})
	return &primary.MutationResult{Applied: applied}, err
}

// DeleteAgent removes an agent and everything it owns.
func (s *TrackerServiceImpl) DeleteAgent(ctx context.Context, req primary.DeleteAgentRequest) (*primary.MutationResult, error) {
	if _, err := s.requireAgent(req.AgentID); err != nil {
		return nil, err
	}
	if !req.Confirmed {
		return nil, primary.ErrConfirmationRequired
	}

	applied, err := s.mutate(ctx, "delete agent", func() bool {
		return s.store.DeleteAgent(req.AgentID)
	})
	return &primary.MutationResult{Applied: applied}, err
}

// UpsertRecord adds or edits a coaching, side-by-side or tech monitor.
func (s *TrackerServiceImpl) UpsertRecord(ctx context.Context, req primary.UpsertRecordRequest) (*primary.UpsertRecordResponse, error) {
	if _, err := s.requireAgent(req.AgentID); err != nil {
		return nil, err
	}

	var recordID string
	var op func() bool
	switch req.Kind {
	case models.KindCoaching, models.KindSide:
		op = func() bool {
			rec, ok := s.store.UpsertInteraction(req.AgentID, req.Kind, req.RecordID, req.Date, req.Notes)
			recordID = rec.ID
			return ok
		}
	case models.KindTech:
		op = func() bool {
			rec, ok := s.store.UpsertScore(req.AgentID, req.RecordID, req.Date, req.Score)
			recordID = rec.ID
			return ok
		}
	default:
		return nil, fmt.Errorf("%w: %q", primary.ErrInvalidRecordKind, req.Kind)
	}

	applied, err := s.mutate(ctx, "upsert "+string(req.Kind), op)
	if err != nil || !applied {
		return &primary.UpsertRecordResponse{}, err
	}
	return &primary.UpsertRecordResponse{Applied: true, RecordID: recordID}, nil
}

// DeleteRecord removes a record.
func (s *TrackerServiceImpl) DeleteRecord(ctx context.Context, req primary.DeleteRecordRequest) (*primary.MutationResult, error) {
	if _, err := s.requireAgent(req.AgentID); err != nil {
		return nil, err
	}
	switch req.Kind {
	case models.KindCoaching, models.KindSide, models.KindTech:
	default:
		return nil, fmt.Errorf("%w: %q", primary.ErrInvalidRecordKind, req.Kind)
	}
	if !req.Confirmed {
		return nil, primary.ErrConfirmationRequired
	}

	applied, err := s.mutate(ctx, "delete "+string(req.Kind), func() bool {
		return s.store.DeleteRecord(req.AgentID, req.Kind, req.RecordID)
	})
	return &primary.MutationResult{Applied: applied}, err
}

// SetNotes overwrites an agent's notes.
func (s *TrackerServiceImpl) SetNotes(ctx context.Context, req primary.SetNotesRequest) (*primary.MutationResult, error) {
	if _, err := s.requireAgent(req.AgentID); err != nil {
		return nil, err
	}

	applied, err := s.mutate(ctx, "set notes", func() bool {
		return s.store.SetNotes(req.AgentID, req.Text)
	})
	return &primary.MutationResult{Applied: applied}, err
}

// UpsertFollowUp adds or edits a follow-up item.
func (s *TrackerServiceImpl) UpsertFollowUp(ctx context.Context, req primary.UpsertFollowUpRequest) (*primary.UpsertFollowUpResponse, error) {
	if _, err := s.requireAgent(req.AgentID); err != nil {
		return nil, err
	}

	var itemID string
	applied, err := s.mutate(ctx, "upsert follow-up", func() bool {
		item, ok := s.store.UpsertFollowUp(req.AgentID, req.ItemID, req.Text)
		itemID = item.ID
		return ok
	})
	if err != nil || !applied {
		return &primary.UpsertFollowUpResponse{}, err
	}
	return &primary.UpsertFollowUpResponse{Applied: true, ItemID: itemID}, nil
}

// DeleteFollowUp removes a follow-up item.
func (s *TrackerServiceImpl) DeleteFollowUp(ctx context.Context, req primary.DeleteFollowUpRequest) (*primary.MutationResult, error) {
	if _, err := s.requireAgent(req.AgentID); err != nil {
		return nil, err
	}
	if !req.Confirmed {
		return nil, primary.ErrConfirmationRequired
	}

	applied, err := s.mutate(ctx, "delete follow-up", func() bool {
		return s.store.DeleteFollowUp(req.AgentID, req.ItemID)
	})
	return &primary.MutationResult{Applied: applied}, err
}

// ResetPeriod clears all records while keeping agents, notes and follow-ups.
func (s *TrackerServiceImpl) ResetPeriod(ctx context.Context, req primary.ConfirmRequest) (*primary.MutationResult, error) {
	if !req.Confirmed {
		return nil, primary.ErrConfirmationRequired
	}

	applied, err := s.mutate(ctx, "reset period", func() bool {
		s.store.ResetPeriod()
		return true
	})
	return &primary.MutationResult{Applied: applied}, err
}

// ClearAll empties the roster and removes it from persistence.
// The pre-migration backup is kept.
func (s *TrackerServiceImpl) ClearAll(ctx context.Context, req primary.ConfirmRequest) (*primary.MutationResult, error) {
	if !req.Confirmed {
		return nil, primary.ErrConfirmationRequired
	}

	if err := s.kv.Delete(ctx, secondary.AgentsKey); err != nil {
		return nil, fmt.Errorf("failed to clear roster: %w", err)
	}
	s.store.ClearAll()
	s.logger.Info("cleared roster")
	return &primary.MutationResult{Applied: true}, nil
}

// ImportReport reconciles an external coaching report into the roster.
func (s *TrackerServiceImpl) ImportReport(ctx context.Context, req primary.ImportReportRequest) (*primary.ImportReportResponse, error) {
	sheet, err := s.reader.Read(ctx, req.Data, req.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", primary.ErrUnreadableReport, err)
	}
	if len(sheet.Rows) == 0 {
		return &primary.ImportReportResponse{NoData: true, Sheet: sheet.Name}, nil
	}

	rows := make([]reconcile.Row, len(sheet.Rows))
	for i, r := range sheet.Rows {
		rows[i] = reconcile.Row(r)
	}

	var res reconcile.Result
	_, err = s.mutate(ctx, "import report", func() bool {
		res = reconcile.Reconcile(s.store.Agents(), rows)
		s.store.Replace(res.Agents)
		return true
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("imported report",
		zap.String("file", req.Filename),
		zap.String("sheet", sheet.Name),
		zap.Int("rows", res.RowsRead),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped))

	return &primary.ImportReportResponse{
		Sheet:    sheet.Name,
		RowsRead: res.RowsRead,
		Imported: res.Imported,
		Skipped:  res.Skipped,
	}, nil
}

// ImportJSON replaces the roster with the contents of an export file.
// The file is validated before confirmation is checked.
func (s *TrackerServiceImpl) ImportJSON(ctx context.Context, req primary.ImportJSONRequest) (*primary.ImportJSONResponse, error) {
	raw, err := migrate.Decode(req.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", primary.ErrInvalidImport, err)
	}
	agents := migrate.Migrate(migrate.ExtractAgents(raw))

	if !req.Confirmed {
		return nil, primary.ErrConfirmationRequired
	}

	_, err = s.mutate(ctx, "import json", func() bool {
		s.store.Replace(agents)
		return true
	})
	if err != nil {
		return nil, err
	}
	return &primary.ImportJSONResponse{Agents: len(agents)}, nil
}

// ExportJSON serializes the roster as an export document.
func (s *TrackerServiceImpl) ExportJSON(ctx context.Context) (*primary.ExportResponse, error) {
	now := s.now().UTC()
	doc := exportDocument{
		Version:    ExportVersion,
		ExportedAt: now.Format(exportTimeLayout),
		Agents:     s.store.Agents(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}
	return &primary.ExportResponse{Data: data, Filename: ExportFilename(now)}, nil
}

// ExportFilename returns agent-tracker_YYYY-MM-DD.json for the UTC date of t.
func ExportFilename(t time.Time) string {
	return "agent-tracker_" + t.UTC().Format(time.DateOnly) + ".json"
}

// ListAgents returns a filtered, sorted view of the roster with metrics.
func (s *TrackerServiceImpl) ListAgents(ctx context.Context, req primary.ListAgentsRequest) ([]*primary.AgentRow, error) {
	key, err := view.ParseSortKey(req.SortKey)
	if err != nil {
		return nil, err
	}
	dir, err := view.ParseDirection(req.Direction)
	if err != nil {
		return nil, err
	}

	projected := view.Project(s.store.Agents(), view.Query{Search: req.Search, Key: key, Direction: dir})
	rows := make([]*primary.AgentRow, 0, len(projected))
	for _, a := range projected {
		rows = append(rows, toAgentRow(a))
	}
	return rows, nil
}

// GetAgent returns a single agent with metrics.
func (s *TrackerServiceImpl) GetAgent(ctx context.Context, agentID string) (*primary.AgentRow, error) {
	a, err := s.requireAgent(agentID)
	if err != nil {
		return nil, err
	}
	return toAgentRow(a), nil
}

// Totals returns roster-wide counts and overall completion.
func (s *TrackerServiceImpl) Totals(ctx context.Context) (*primary.Totals, error) {
	sum := scoring.Totals(s.store.Agents())
	return &primary.Totals{
		Agents:      sum.Agents,
		Coachings:   sum.Coachings,
		Sides:       sum.Sides,
		Techs:       sum.Techs,
		Requirement: sum.Requirement,
		Percent:     sum.Percent,
	}, nil
}

// Helper methods

// mutate runs op and persists the result when it applied.
// A failed write restores the previous roster.
func (s *TrackerServiceImpl) mutate(ctx context.Context, name string, op func() bool) (bool, error) {
	prev := s.store.Agents()
	if !op() {
		s.logger.Debug("mutation not applied", zap.String("op", name))
		return false, nil
	}
	if err := s.persist(ctx); err != nil {
		s.store.Replace(prev)
		return false, err
	}
	s.logger.Debug("mutation applied", zap.String("op", name), zap.Int("agents", s.store.Len()))
	return true, nil
}

// persist serializes the whole roster before writing it.
func (s *TrackerServiceImpl) persist(ctx context.Context) error {
	data, err := json.Marshal(s.store.Agents())
	if err != nil {
		return fmt.Errorf("failed to encode roster: %w", err)
	}
	if err := s.kv.Set(ctx, secondary.AgentsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save roster: %w", err)
	}
	return nil
}

func (s *TrackerServiceImpl) requireAgent(id string) (models.Agent, error) {
	a, ok := s.store.Get(id)
	if !ok {
		return models.Agent{}, fmt.Errorf("%w: %s", primary.ErrAgentNotFound, id)
	}
	return a, nil
}

func toAgentRow(a models.Agent) *primary.AgentRow {
	tier := scoring.AgentTier(a)
	return &primary.AgentRow{
		Agent:      a,
		Completion: scoring.Completion(a),
		Score:      scoring.Score(a),
		Tier:       tier.Name,
		TierColor:  tier.Color,
	}
}

// Ensure TrackerServiceImpl implements the interface
var _ primary.TrackerService = (*TrackerServiceImpl)(nil)
