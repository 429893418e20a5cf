package primary

import (
	"context"

	"github.com/BobBjorklund/progressTracker/internal/models"
)

// TrackerService defines the primary port for roster operations.
// The service owns the in-memory roster and persists it after every applied mutation.
type TrackerService interface {
	// Load reads the persisted roster, migrating (and backing up) legacy blobs.
	Load(ctx context.Context) (*LoadResult, error)

	// Save writes the current roster unconditionally.
	Save(ctx context.Context) error

	// AddAgent adds an agent to the roster.
	AddAgent(ctx context.Context, req AddAgentRequest) (*AddAgentResponse, error)

	// EditAgent updates an agent's name and requirement.
	EditAgent(ctx context.Context, req EditAgentRequest) (*MutationResult, error)

	// DeleteAgent removes an agent and everything it owns. Requires confirmation.
	DeleteAgent(ctx context.Context, req DeleteAgentRequest) (*MutationResult, error)

	// UpsertRecord adds or edits a coaching, side-by-side or tech monitor.
	UpsertRecord(ctx context.Context, req UpsertRecordRequest) (*UpsertRecordResponse, error)

	// DeleteRecord removes a record. Requires confirmation.
	DeleteRecord(ctx context.Context, req DeleteRecordRequest) (*MutationResult, error)

	// SetNotes overwrites an agent's notes.
	SetNotes(ctx context.Context, req SetNotesRequest) (*MutationResult, error)

	// UpsertFollowUp adds or edits a follow-up item.
	UpsertFollowUp(ctx context.Context, req UpsertFollowUpRequest) (*UpsertFollowUpResponse, error)

	// DeleteFollowUp removes a follow-up item. Requires confirmation.
	DeleteFollowUp(ctx context.Context, req DeleteFollowUpRequest) (*MutationResult, error)

	// ResetPeriod clears all records while keeping agents, notes and follow-ups.
	ResetPeriod(ctx context.Context, req ConfirmRequest) (*MutationResult, error)

	// ClearAll empties the roster and removes it from persistence.
	ClearAll(ctx context.Context, req ConfirmRequest) (*MutationResult, error)

	// ImportReport reconciles an external coaching report into the roster.
	ImportReport(ctx context.Context, req ImportReportRequest) (*ImportReportResponse, error)

	// ImportJSON replaces the roster with the contents of an export file. Requires confirmation.
	ImportJSON(ctx context.Context, req ImportJSONRequest) (*ImportJSONResponse, error)

	// ExportJSON serializes the roster as an export document.
	ExportJSON(ctx context.Context) (*ExportResponse, error)

	// ListAgents returns a filtered, sorted view of the roster with metrics.
	ListAgents(ctx context.Context, req ListAgentsRequest) ([]*AgentRow, error)

	// GetAgent returns a single agent with metrics.
	GetAgent(ctx context.Context, agentID string) (*AgentRow, error)

	// Totals returns roster-wide counts and overall completion.
	Totals(ctx context.Context) (*Totals, error)
}

// LoadResult describes what happened while loading persisted state.
type LoadResult struct {
	Agents        int
	Migrated      bool // a legacy blob was rewritten in canonical form
	BackupWritten bool // the pre-migration blob was saved under the backup key
}

// MutationResult reports whether a mutation changed the roster.
// Applied is false for silently rejected input (blank text, unknown ids).
type MutationResult struct {
	Applied bool
}

// ConfirmRequest carries the explicit confirmation for roster-wide destructive operations.
type ConfirmRequest struct {
	Confirmed bool
}

// AddAgentRequest contains parameters for adding an agent.
type AddAgentRequest struct {
	Name        string
	Requirement int
}

// AddAgentResponse contains the result of adding an agent.
type AddAgentResponse struct {
	Applied bool
	Agent   *models.Agent
}

// EditAgentRequest contains parameters for editing an agent.
type EditAgentRequest struct {
	AgentID     string
	Name        string
	Requirement int
}

// DeleteAgentRequest contains parameters for deleting an agent.
type DeleteAgentRequest struct {
	AgentID   string
	Confirmed bool
}

// UpsertRecordRequest adds a record when RecordID is empty or unknown, and
// edits in place otherwise. Notes is required for coachings and sides, Score for techs.
type UpsertRecordRequest struct {
	AgentID  string
	Kind     models.RecordKind
	RecordID string
	Date     string
	Notes    string
	Score    string
}

// UpsertRecordResponse contains the stored record id.
type UpsertRecordResponse struct {
	Applied  bool
	RecordID string
}

// DeleteRecordRequest contains parameters for deleting a record.
type DeleteRecordRequest struct {
	AgentID   string
	Kind      models.RecordKind
	RecordID  string
	Confirmed bool
}

// SetNotesRequest contains parameters for overwriting notes.
type SetNotesRequest struct {
	AgentID string
	Text    string
}

// UpsertFollowUpRequest adds an item when ItemID is empty or unknown, and edits otherwise.
type UpsertFollowUpRequest struct {
	AgentID string
	ItemID  string
	Text    string
}

// UpsertFollowUpResponse contains the stored item id.
type UpsertFollowUpResponse struct {
	Applied bool
	ItemID  string
}

// DeleteFollowUpRequest contains parameters for deleting a follow-up.
type DeleteFollowUpRequest struct {
	AgentID   string
	ItemID    string
	Confirmed bool
}

// ImportReportRequest carries raw spreadsheet bytes.
type ImportReportRequest struct {
	Data     []byte
	Filename string // used to pick the parser
}

// ImportReportResponse summarizes a report import.
// NoData distinguishes an empty report from one whose rows were all skipped.
type ImportReportResponse struct {
	NoData   bool
	Sheet    string
	RowsRead int
	Imported int
	Skipped  int
}

// ImportJSONRequest carries the contents of an export file.
type ImportJSONRequest struct {
	Data      []byte
	Confirmed bool
}

// ImportJSONResponse summarizes a JSON import.
type ImportJSONResponse struct {
	Agents int
}

// ExportResponse contains a serialized export document.
type ExportResponse struct {
	Data     []byte
	Filename string
}

// ListAgentsRequest contains the projection parameters.
type ListAgentsRequest struct {
	Search    string
	SortKey   string
	Direction string
}

// AgentRow is an agent with its derived metrics.
type AgentRow struct {
	Agent      models.Agent
	Completion float64
	Score      float64
	Tier       string
	TierColor  string
}

// Totals contains roster-wide counts.
type Totals struct {
	Agents      int
	Coachings   int
	Sides       int
	Techs       int
	Requirement int
	Percent     float64
}
