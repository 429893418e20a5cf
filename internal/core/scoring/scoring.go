// Package scoring derives completion, composite score and tier for agents.
// This is part of the Functional Core - no I/O, only pure functions.
package scoring

import (
	"sort"

	"github.com/BobBjorklund/progressTracker/internal/models"
)

// TechBonus is added to the score when an agent has any tech monitor.
const TechBonus = 10.0

// Tier is a display band for a score.
type Tier struct {
	Name      string
	Threshold float64
	Color     string // hex, as shown in the tracker grid
}

// TierNone is used for scores below every threshold.
var TierNone = Tier{Name: "none", Threshold: -1, Color: "#111827"}

// tiers must stay sorted by ascending Threshold.
var tiers = []Tier{
	{Name: "critical", Threshold: 0, Color: "#6b0f1a"},
	{Name: "behind", Threshold: 25, Color: "#7a2e0e"},
	{Name: "on-track", Threshold: 66, Color: "#6e6a00"},
	{Name: "complete", Threshold: 100, Color: "#0f6b3a"},
	{Name: "exceeding", Threshold: 110, Color: "#0b5ed7"},
}

// Tiers returns the tier table in ascending threshold order.
func Tiers() []Tier {
	return append([]Tier(nil), tiers...)
}

// Completion is (coachings + sides) / (requirement + 1) * 100.
func Completion(a models.Agent) float64 {
	done := float64(len(a.Coachings) + len(a.Sides))
	return done / float64(a.Requirement+1) * 100
}

// Score is Completion plus TechBonus when the agent has any tech monitor.
func Score(a models.Agent) float64 {
	s := Completion(a)
	if len(a.Techs) > 0 {
		s += TechBonus
	}
	return s
}

// TierFor returns the tier with the greatest threshold <= score.
func TierFor(score float64) Tier {
	// first tier whose threshold exceeds score; the one before it is the floor
	i := sort.Search(len(tiers), func(i int) bool { return tiers[i].Threshold > score })
	if i == 0 {
		return TierNone
	}
	return tiers[i-1]
}

// AgentTier is TierFor(Score(a)).
func AgentTier(a models.Agent) Tier {
	return TierFor(Score(a))
}

// Summary aggregates record counts across the roster.
type Summary struct {
	Agents      int
	Coachings   int
	Sides       int
	Techs       int
	Requirement int     // sum of requirements
	Percent     float64 // (coachings + sides) / (agents + requirement) * 100
}

// Totals computes roster-wide counts and the overall completion percentage.
// Percent is 0 for an empty denominator.
func Totals(agents []models.Agent) Summary {
	s := Summary{Agents: len(agents)}
	for _, a := range agents {
		s.Coachings += len(a.Coachings)
		s.Sides += len(a.Sides)
		s.Techs += len(a.Techs)
		s.Requirement += a.Requirement
	}
	if denom := s.Agents + s.Requirement; denom > 0 {
		s.Percent = float64(s.Coachings+s.Sides) / float64(denom) * 100
	}
	return s
}
