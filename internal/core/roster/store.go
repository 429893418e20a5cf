// Package roster holds the in-memory canonical roster and every mutation on it.
// This is part of the Functional Core - no I/O.
//
// Invalid input (blank required text, unknown ids) is rejected as a silent
// no-op: mutations report whether they applied rather than returning errors.
// Every applied mutation builds the complete next roster before swapping it
// in, so readers never observe a partially updated agent.
//
// A Store has a single owner and is not safe for concurrent use.
package roster

import (
	"strings"

	"github.com/BobBjorklund/progressTracker/internal/core/identity"
	"github.com/BobBjorklund/progressTracker/internal/models"
)

// Store is the single source of truth for the roster.
type Store struct {
	agents []models.Agent
}

// New creates a store holding a copy of agents.
func New(agents []models.Agent) *Store {
	return &Store{agents: models.CloneAll(agents)}
}

// Agents returns a deep copy of the roster in stored order.
func (s *Store) Agents() []models.Agent {
	return models.CloneAll(s.agents)
}

// Len returns the number of agents.
func (s *Store) Len() int {
	return len(s.agents)
}

// Get returns a copy of the agent with id.
func (s *Store) Get(id string) (models.Agent, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.agents[i].Clone(), true
	}
	return models.Agent{}, false
}

// FindByName returns the first agent whose trimmed name matches case-insensitively.
func (s *Store) FindByName(name string) (models.Agent, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, a := range s.agents {
		if strings.ToLower(strings.TrimSpace(a.Name)) == key {
			return a.Clone(), true
		}
	}
	return models.Agent{}, false
}

// Replace swaps in an entirely new roster.
func (s *Store) Replace(agents []models.Agent) {
	s.agents = models.CloneAll(agents)
}

// AddAgent appends a new agent with empty collections.
// No-op when the trimmed name is blank.
func (s *Store) AddAgent(name string, requirement int) (models.Agent, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Agent{}, false
	}
	a := models.NewAgent(identity.NewID(), name, identity.ClampRequirement(requirement))

	next := make([]models.Agent, 0, len(s.agents)+1)
	next = append(next, s.agents...)
	next = append(next, a)
	s.agents = next
	return a.Clone(), true
}

// EditAgent updates name and requirement only.
func (s *Store) EditAgent(id, name string, requirement int) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return s.update(id, func(a *models.Agent) bool {
		a.Name = name
		a.Requirement = identity.ClampRequirement(requirement)
		return true
	})
}

// DeleteAgent removes the agent and everything it owns.
func (s *Store) DeleteAgent(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]models.Agent, 0, len(s.agents)-1)
	next = append(next, s.agents[:i]...)
	next = append(next, s.agents[i+1:]...)
	s.agents = next
	return true
}

// UpsertInteraction replaces the coaching or side record with recordID in
// place, or prepends a new one. An empty recordID gets a fresh id.
// No-op for blank notes, an unknown agent, or a non-interaction kind.
func (s *Store) UpsertInteraction(agentID string, kind models.RecordKind, recordID, date, notes string) (models.InteractionRecord, bool) {
	notes = strings.TrimSpace(notes)
	if notes == "" || !kind.IsInteraction() {
		return models.InteractionRecord{}, false
	}
	if recordID == "" {
		recordID = identity.NewID()
	}
	rec := models.InteractionRecord{ID: recordID, Date: strings.TrimSpace(date), Notes: notes}

	ok := s.update(agentID, func(a *models.Agent) bool {
		a.SetInteractions(kind, upsert(a.Interactions(kind), rec, func(r models.InteractionRecord) string { return r.ID }))
		return true
	})
	return rec, ok
}

// UpsertScore is UpsertInteraction for tech monitors, keyed on a non-blank score.
func (s *Store) UpsertScore(agentID, recordID, date, score string) (models.ScoreRecord, bool) {
	score = strings.TrimSpace(score)
	if score == "" {
		return models.ScoreRecord{}, false
	}
	if recordID == "" {
		recordID = identity.NewID()
	}
	rec := models.ScoreRecord{ID: recordID, Date: strings.TrimSpace(date), Score: score}

	ok := s.update(agentID, func(a *models.Agent) bool {
		a.Techs = upsert(a.Techs, rec, func(r models.ScoreRecord) string { return r.ID })
		return true
	})
	return rec, ok
}

// DeleteRecord removes a coaching, side or tech record.
func (s *Store) DeleteRecord(agentID string, kind models.RecordKind, recordID string) bool {
	return s.update(agentID, func(a *models.Agent) bool {
		switch kind {
		case models.KindCoaching, models.KindSide:
			next, removed := remove(a.Interactions(kind), func(r models.InteractionRecord) bool { return r.ID == recordID })
			a.SetInteractions(kind, next)
			return removed
		case models.KindTech:
			var removed bool
			a.Techs, removed = remove(a.Techs, func(r models.ScoreRecord) bool { return r.ID == recordID })
			return removed
		}
		return false
	})
}

// SetNotes overwrites the agent's notes. Empty text is allowed.
func (s *Store) SetNotes(agentID, text string) bool {
	return s.update(agentID, func(a *models.Agent) bool {
		a.Notes = text
		return true
	})
}

// UpsertFollowUp replaces the item with itemID in place, or prepends a new one.
func (s *Store) UpsertFollowUp(agentID, itemID, text string) (models.FollowUp, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.FollowUp{}, false
	}
	if itemID == "" {
		itemID = identity.NewID()
	}
	item := models.FollowUp{ID: itemID, Text: text}

	ok := s.update(agentID, func(a *models.Agent) bool {
		a.FollowUps = upsert(a.FollowUps, item, func(f models.FollowUp) string { return f.ID })
		return true
	})
	return item, ok
}

// DeleteFollowUp removes a follow-up item.
func (s *Store) DeleteFollowUp(agentID, itemID string) bool {
	return s.update(agentID, func(a *models.Agent) bool {
		var removed bool
		a.FollowUps, removed = remove(a.FollowUps, func(f models.FollowUp) bool { return f.ID == itemID })
		return removed
	})
}

// ResetPeriod clears coachings, sides and techs for every agent.
// Name, requirement, notes and follow-ups are untouched.
func (s *Store) ResetPeriod() {
	next := make([]models.Agent, len(s.agents))
	for i, a := range s.agents {
		c := a.Clone()
		c.Coachings = []models.InteractionRecord{}
		c.Sides = []models.InteractionRecord{}
		c.Techs = []models.ScoreRecord{}
		next[i] = c
	}
	s.agents = next
}

// ClearAll empties the roster.
func (s *Store) ClearAll() {
	s.agents = []models.Agent{}
}

func (s *Store) indexOf(id string) int {
	for i, a := range s.agents {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// update applies fn to a copy of the agent and commits only if fn reports a change.
func (s *Store) update(id string, fn func(*models.Agent) bool) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	a := s.agents[i].Clone()
	if !fn(&a) {
		return false
	}
	next := make([]models.Agent, len(s.agents))
	copy(next, s.agents)
	next[i] = a
	s.agents = next
	return true
}

// upsert replaces the element with the same id in place, or prepends item.
func upsert[T any](list []T, item T, id func(T) string) []T {
	key := id(item)
	for i, existing := range list {
		if id(existing) == key {
			next := append([]T{}, list...)
			next[i] = item
			return next
		}
	}
	next := make([]T, 0, len(list)+1)
	next = append(next, item)
	return append(next, list...)
}

// remove drops every element matching match.
func remove[T any](list []T, match func(T) bool) ([]T, bool) {
	next := make([]T, 0, len(list))
	for _, v := range list {
		if !match(v) {
			next = append(next, v)
		}
	}
	return next, len(next) != len(list)
}
