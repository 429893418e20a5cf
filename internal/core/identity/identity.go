// Package identity contains id generation and the coercion rules for loosely-typed legacy values.
// This is part of the Functional Core - no I/O, only pure functions (NewID aside).
package identity

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// Defaults applied when a value is missing or unusable.
const (
	DefaultRequirement = 2
	UnnamedAgent       = "Unnamed"
	MinRequirement     = 0
	MaxRequirement     = 99
)

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.NewString()
}

// ClampRequirement clamps n into [MinRequirement, MaxRequirement].
func ClampRequirement(n int) int {
	if n < MinRequirement {
		return MinRequirement
	}
	if n > MaxRequirement {
		return MaxRequirement
	}
	return n
}

// RequirementFromNumber converts a decoded JSON number into a requirement.
// Returns false for NaN and infinities; fractions truncate toward zero.
func RequirementFromNumber(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	// clamp before converting so huge values cannot overflow int
	if f < MinRequirement {
		return MinRequirement, true
	}
	if f > MaxRequirement {
		return MaxRequirement, true
	}
	return ClampRequirement(int(math.Trunc(f))), true
}

// ParseLegacyLine splits a legacy "<date>: <notes>" line on the first colon.
// Without a colon the whole trimmed line is the notes and the date is empty.
func ParseLegacyLine(line string) (date, notes string) {
	before, after, found := strings.Cut(line, ":")
	if !found {
		return "", strings.TrimSpace(line)
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

const scorePrefix = "score:"

// StripScorePrefix trims s and removes a leading case-insensitive "score:".
func StripScorePrefix(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(scorePrefix) && strings.EqualFold(s[:len(scorePrefix)], scorePrefix) {
		return strings.TrimSpace(s[len(scorePrefix):])
	}
	return s
}

// IsBlank reports whether s is empty after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
