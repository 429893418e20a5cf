// Package view projects the roster into a filtered, ordered list for display.
// This is part of the Functional Core - no I/O; the input is never modified.
package view

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/BobBjorklund/progressTracker/internal/core/scoring"
	"github.com/BobBjorklund/progressTracker/internal/models"
)

// SortKey selects the primary ordering.
type SortKey string

// Sort keys
const (
	SortName        SortKey = "name"
	SortCompletion  SortKey = "completion"
	SortScore       SortKey = "score"
	SortCoachings   SortKey = "coachings"
	SortSides       SortKey = "sides"
	SortTechs       SortKey = "techs"
	SortRequirement SortKey = "requirement"
	SortFollowUps   SortKey = "followups"
)

// SortKeys lists every accepted key.
var SortKeys = []SortKey{
	SortName, SortCompletion, SortScore, SortCoachings,
	SortSides, SortTechs, SortRequirement, SortFollowUps,
}

// Direction is ascending or descending.
type Direction string

// Directions
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Query describes a projection. The zero value lists everything by name ascending.
type Query struct {
	Search    string
	Key       SortKey
	Direction Direction
}

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if k == "" {
		return SortName, nil
	}
	if slices.Contains(SortKeys, k) {
		return k, nil
	}
	return "", fmt.Errorf("invalid sort key: %s", s)
}

// ParseDirection validates a user-supplied direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("invalid sort direction: %s", s)
}

// Project filters agents by case-insensitive name substring and sorts them by
// q.Key in q.Direction. Equal primary values fall back to name ascending.
func Project(agents []models.Agent, q Query) []models.Agent {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.Agent, 0, len(agents))
	for _, a := range agents {
		if needle == "" || strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, a.Clone())
		}
	}

	// collators are not safe for concurrent use; one per projection
	col := collate.New(language.English)
	byName := func(x, y models.Agent) int {
		return col.CompareString(x.Name, y.Name)
	}

	dir := 1
	if q.Direction == Desc {
		dir = -1
	}
	primary := primaryCompare(q.Key, byName)

	slices.SortStableFunc(out, func(x, y models.Agent) int {
		if c := primary(x, y) * dir; c != 0 {
			return c
		}
		return byName(x, y)
	})
	return out
}

func primaryCompare(key SortKey, byName func(x, y models.Agent) int) func(x, y models.Agent) int {
	switch key {
	case SortName, "":
		return byName
	case SortCompletion:
		return func(x, y models.Agent) int { return cmp.Compare(scoring.Completion(x), scoring.Completion(y)) }
	case SortScore:
		return func(x, y models.Agent) int { return cmp.Compare(scoring.Score(x), scoring.Score(y)) }
	case SortCoachings:
		return func(x, y models.Agent) int { return cmp.Compare(len(x.Coachings), len(y.Coachings)) }
	case SortSides:
		return func(x, y models.Agent) int { return cmp.Compare(len(x.Sides), len(y.Sides)) }
	case SortTechs:
		return func(x, y models.Agent) int { return cmp.Compare(len(x.Techs), len(y.Techs)) }
	case SortRequirement:
		return func(x, y models.Agent) int { return cmp.Compare(x.Requirement, y.Requirement) }
	case SortFollowUps:
		return func(x, y models.Agent) int { return cmp.Compare(len(x.FollowUps), len(y.FollowUps)) }
	}
	return func(x, y models.Agent) int { return 0 }
}
