// Package models holds the canonical roster shape that is persisted and exported.
package models

// Agent is one tracked individual.
type Agent struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Requirement int                 `json:"requirement"` // side-by-side target, 0..99
	Coachings   []InteractionRecord `json:"coachings"`
	Sides       []InteractionRecord `json:"sides"`
	Techs       []ScoreRecord       `json:"techs"`
	Notes       string              `json:"notes"`
	FollowUps   []FollowUp          `json:"followUps"`
}

// InteractionRecord is a coaching session or a side-by-side.
type InteractionRecord struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

// ScoreRecord is a technical-monitoring score.
type ScoreRecord struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Score string `json:"score"`
}

// FollowUp is a sticky to-do item attached to an agent.
type FollowUp struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// RecordKind selects one of an agent's record lists.
type RecordKind string

// Record kinds
const (
	KindCoaching RecordKind = "coaching"
	KindSide     RecordKind = "side"
	KindTech     RecordKind = "tech"
)

// ParseRecordKind accepts singular and plural spellings.
func ParseRecordKind(s string) (RecordKind, bool) {
	switch s {
	case "coaching", "coachings":
		return KindCoaching, true
	case "side", "sides", "side-by-side":
		return KindSide, true
	case "tech", "techs":
		return KindTech, true
	}
	return "", false
}

// IsInteraction reports whether the kind holds InteractionRecords.
func (k RecordKind) IsInteraction() bool {
	return k == KindCoaching || k == KindSide
}

// NewAgent returns an agent with empty, non-nil collections.
func NewAgent(id, name string, requirement int) Agent {
	return Agent{
		ID:          id,
		Name:        name,
		Requirement: requirement,
		Coachings:   []InteractionRecord{},
		Sides:       []InteractionRecord{},
		Techs:       []ScoreRecord{},
		FollowUps:   []FollowUp{},
	}
}

// Clone returns a deep copy of the agent.
func (a Agent) Clone() Agent {
	c := a
	c.Coachings = append([]InteractionRecord{}, a.Coachings...)
	c.Sides = append([]InteractionRecord{}, a.Sides...)
	c.Techs = append([]ScoreRecord{}, a.Techs...)
	c.FollowUps = append([]FollowUp{}, a.FollowUps...)
	return c
}

// Interactions returns the coaching or side list for kind.
func (a *Agent) Interactions(kind RecordKind) []InteractionRecord {
	if kind == KindSide {
		return a.Sides
	}
	return a.Coachings
}

// SetInteractions replaces the coaching or side list for kind.
func (a *Agent) SetInteractions(kind RecordKind, records []InteractionRecord) {
	if kind == KindSide {
		a.Sides = records
		return
	}
	a.Coachings = records
}

// HasInteraction reports whether the list for kind contains recordID.
func (a *Agent) HasInteraction(kind RecordKind, recordID string) bool {
	for _, r := range a.Interactions(kind) {
		if r.ID == recordID {
			return true
		}
	}
	return false
}

// HasRecord reports whether the list for kind contains recordID.
func (a *Agent) HasRecord(kind RecordKind, recordID string) bool {
	if kind.IsInteraction() {
		return a.HasInteraction(kind, recordID)
	}
	for _, r := range a.Techs {
		if r.ID == recordID {
			return true
		}
	}
	return false
}

// HasFollowUp reports whether the agent has a follow-up with itemID.
func (a *Agent) HasFollowUp(itemID string) bool {
	for _, f := range a.FollowUps {
		if f.ID == itemID {
			return true
		}
	}
	return false
}

// CloneAll deep-copies a roster.
func CloneAll(agents []Agent) []Agent {
	out := make([]Agent, len(agents))
	for i, a := range agents {
		out[i] = a.Clone()
	}
	return out
}
