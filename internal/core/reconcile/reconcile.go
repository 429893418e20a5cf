// Package reconcile merges rows from an external coaching report into the roster.
// This is part of the Functional Core - no I/O, only pure functions.
//
// Reconciliation is append-only and idempotent per external row id: each row
// maps to a deterministic record id, and a row whose record already exists is
// counted as skipped instead of being inserted again. Existing records, including
// ones created by earlier imports, are never edited or removed.
package reconcile

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/BobBjorklund/progressTracker/internal/core/identity"
	"github.com/BobBjorklund/progressTracker/internal/models"
)

// Report column headers.
const (
	HeaderID         = "Id"
	HeaderAgentName  = "Agent Name"
	HeaderFormName   = "Coaching Form Name"
	HeaderDateTime   = "Date Time"
	HeaderCreatedBy  = "Created By Name"
	HeaderTeamLeader = "Team Leader"
)

// RecordIDPrefix marks records created by report imports.
const RecordIDPrefix = "bpa_"

// Row is one report row keyed by column header.
type Row map[string]string

// Result is the outcome of a reconciliation pass.
type Result struct {
	Agents   []models.Agent
	RowsRead int
	Imported int
	Skipped  int // rows whose record was already present
}

// Reconcile merges rows into a copy of agents. The input slice is not modified.
// Rows missing an id or agent name, and rows whose form is neither a
// side-by-side nor a coaching, are ignored without being counted.
func Reconcile(agents []models.Agent, rows []Row) Result {
	next := models.CloneAll(agents)
	res := Result{RowsRead: len(rows)}

	byName := make(map[string]int, len(next))
	// later agents shadow earlier ones with the same name
	for i, a := range next {
		byName[nameKey(a.Name)] = i
	}

	for _, row := range rows {
		externalID := strings.TrimSpace(Pick(row, HeaderID))
		if externalID == "" {
			continue
		}
		rawName := Pick(row, HeaderAgentName)
		if identity.IsBlank(rawName) {
			continue
		}
		formName := Pick(row, HeaderFormName)
		kind, ok := Classify(formName)
		if !ok {
			continue
		}

		name := NormalizeName(rawName)
		i, found := byName[nameKey(name)]
		if !found {
			next = append(next, models.NewAgent(identity.NewID(), name, identity.DefaultRequirement))
			i = len(next) - 1
			byName[nameKey(name)] = i
		}
		agent := &next[i]

		recID := RecordID(externalID)
		if agent.HasInteraction(kind, recID) {
			res.Skipped++
			continue
		}

		rec := models.InteractionRecord{
			ID:    recID,
			Date:  strings.TrimSpace(Pick(row, HeaderDateTime)),
			Notes: ImportNotes(formName, Pick(row, HeaderTeamLeader), Pick(row, HeaderCreatedBy), externalID),
		}
		existing := agent.Interactions(kind)
		list := make([]models.InteractionRecord, 0, len(existing)+1)
		list = append(list, rec)
		agent.SetInteractions(kind, append(list, existing...))
		res.Imported++
	}

	res.Agents = next
	return res
}

// RecordID derives the stable record id for an external row id.
func RecordID(externalID string) string {
	return RecordIDPrefix + strings.TrimSpace(externalID)
}

// ImportNotes builds the traceability notes stored on an imported record.
func ImportNotes(formName, teamLeader, createdBy, externalID string) string {
	return fmt.Sprintf("BPA import • %s • TL: %s • By: %s • ID %s",
		strings.TrimSpace(formName),
		strings.TrimSpace(teamLeader),
		strings.TrimSpace(createdBy),
		strings.TrimSpace(externalID))
}

// Classify maps a free-text form name to a record kind. "side" wins over
// "coaching"; anything else is not importable.
func Classify(formName string) (models.RecordKind, bool) {
	f := strings.ToLower(formName)
	switch {
	case strings.Contains(f, "side"):
		return models.KindSide, true
	case strings.Contains(f, "coaching"):
		return models.KindCoaching, true
	}
	return "", false
}

var lastFirst = regexp.MustCompile(`^([^,]+),\s*(.+)$`)

// NormalizeName rewrites "Last, First Middle" as "First Middle Last".
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	m := lastFirst.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	return strings.TrimSpace(m[2] + " " + m[1])
}

// NormalizeHeader folds non-breaking spaces, surrounding whitespace and case.
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(h, "\u00a0", " ")))
}

// Pick reads a column, trying the exact header first and then any header
// that matches after normalization. Missing columns read as "".
func Pick(row Row, header string) string {
	if v := row[header]; v != "" {
		return v
	}
	want := NormalizeHeader(header)
	keys := make([]string, 0, len(row))
	for k := range row {
		if NormalizeHeader(k) == want {
			keys = append(keys, k)
		}
	}
	// several spellings of one header: prefer a non-empty value, deterministically
	sort.Strings(keys)
	for _, k := range keys {
		if row[k] != "" {
			return row[k]
		}
	}
	return ""
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
