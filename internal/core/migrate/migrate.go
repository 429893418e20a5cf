// Package migrate converts persisted roster blobs of any historical shape into
// the canonical roster. This is part of the Functional Core - no I/O.
//
// Migrate is total and idempotent: every field it emits is already canonical,
// so a second pass over its (JSON round-tripped) output changes nothing.
package migrate

import (
	"encoding/json"
	"strings"

	"github.com/BobBjorklund/progressTracker/internal/core/identity"
	"github.com/BobBjorklund/progressTracker/internal/models"
)

// Migrate converts a decoded JSON value into the canonical roster.
// Anything that is not an array yields an empty roster.
func Migrate(raw any) []models.Agent {
	list, ok := raw.([]any)
	if !ok {
		return []models.Agent{}
	}

	agents := make([]models.Agent, 0, len(list))
	for _, v := range list {
		agents = append(agents, migrateAgent(classify(v)))
	}
	return agents
}

func migrateAgent(e entry) models.Agent {
	id, ok := e.str("id")
	if !ok {
		id = identity.NewID()
	}

	requirement := identity.DefaultRequirement
	if n, ok := e.number("requirement"); ok {
		if r, ok := identity.RequirementFromNumber(n); ok {
			requirement = r
		}
	}

	a := models.NewAgent(id, e.strOr("name", identity.UnnamedAgent), requirement)
	a.Notes = e.strOr("notes", "")

	if raw, ok := e.list("coachings"); ok {
		a.Coachings = migrateInteractions(raw)
	}
	if raw, ok := e.list("sides"); ok {
		a.Sides = migrateInteractions(raw)
	}
	if raw, ok := e.list("techs"); ok {
		a.Techs = migrateScores(raw)
	}
	if raw, ok := e.list("followUps"); ok {
		a.FollowUps = migrateFollowUps(raw)
	}
	return a
}

func migrateInteractions(raw []any) []models.InteractionRecord {
	out := make([]models.InteractionRecord, 0, len(raw))
	for _, v := range raw {
		e := classify(v)
		if e.shape == shapeString {
			date, notes := identity.ParseLegacyLine(e.text)
			out = append(out, models.InteractionRecord{ID: identity.NewID(), Date: date, Notes: notes})
			continue
		}
		out = append(out, models.InteractionRecord{
			ID:    idOrNew(e),
			Date:  e.strOr("date", ""),
			Notes: e.strOr("notes", ""),
		})
	}
	return out
}

func migrateScores(raw []any) []models.ScoreRecord {
	out := make([]models.ScoreRecord, 0, len(raw))
	for _, v := range raw {
		e := classify(v)
		if e.shape == shapeString {
			out = append(out, models.ScoreRecord{ID: identity.NewID(), Score: identity.StripScorePrefix(e.text)})
			continue
		}
		out = append(out, models.ScoreRecord{
			ID:    idOrNew(e),
			Date:  e.strOr("date", ""),
			Score: e.strOr("score", ""),
		})
	}
	return out
}

// migrateFollowUps drops items whose text is blank after migration.
func migrateFollowUps(raw []any) []models.FollowUp {
	out := make([]models.FollowUp, 0, len(raw))
	for _, v := range raw {
		e := classify(v)
		var item models.FollowUp
		if e.shape == shapeString {
			item = models.FollowUp{ID: identity.NewID(), Text: e.text}
		} else {
			item = models.FollowUp{ID: idOrNew(e), Text: e.strOr("text", "")}
		}
		if strings.TrimSpace(item.Text) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func idOrNew(e entry) string {
	if id, ok := e.str("id"); ok {
		return id
	}
	return identity.NewID()
}

// IsLegacy reports whether a decoded blob predates the canonical shape and
// should be backed up before being overwritten.
func IsLegacy(raw any) bool {
	list, ok := raw.([]any)
	if !ok {
		return false
	}
	for _, v := range list {
		if isLegacyAgent(classify(v)) {
			return true
		}
	}
	return false
}

func isLegacyAgent(e entry) bool {
	if _, ok := e.str("id"); !ok {
		return true
	}
	for _, key := range []string{"coachings", "sides", "techs"} {
		if l, ok := e.list(key); ok && containsString(l) {
			return true
		}
	}
	if _, ok := e.str("notes"); !ok {
		return true
	}
	if _, ok := e.list("followUps"); !ok {
		return true
	}
	return false
}

func containsString(l []any) bool {
	for _, v := range l {
		if _, ok := v.(string); ok {
			return true
		}
	}
	return false
}

// Decode parses JSON text into a raw value for Migrate.
func Decode(data []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ExtractAgents accepts the two import file forms: a bare array, or an object
// carrying an "agents" array. Anything else yields nil.
func ExtractAgents(raw any) any {
	switch t := raw.(type) {
	case []any:
		return t
	case map[string]any:
		return t["agents"]
	}
	return nil
}
