// Package missions defines the mission store contract and the toggle
// semantics shared by every backing store.  Two stores exist: the MySQL
// repository (primary) and a whole-file JSON store (fallback when the
// mission table is unavailable).  Chain orders them explicitly.
package missions

import (
	"context"
	"errors"
	"time"

	"github.com/toptiermen/platform/internal/model"
)

// ErrNotFound is returned by a store when the requested mission does
// not exist for the given user.  Chain treats it as authoritative and
// does not fall through to the next source.
var ErrNotFound = errors.New("mission not found")

// ToggleResult reports the outcome of flipping a mission's completion
// state.  XPEarned is signed: positive when the mission was completed,
// negative (the full reward) when a completion was undone.
type ToggleResult struct {
	Mission   model.Mission
	Completed bool
	XPEarned  int
}

// Store is one source of mission data.  Implementations must be safe
// for concurrent use.
type Store interface {
	List(ctx context.Context, userID uint64) ([]model.Mission, error)
	Create(ctx context.Context, m model.Mission) (model.Mission, error)
	Toggle(ctx context.Context, userID, missionID uint64) (ToggleResult, error)
	Delete(ctx context.Context, userID, missionID uint64) error
}

// Today returns the server-local calendar date as an ISO date string.
// Completion comparison is an exact string match against this value,
// so members outside the server's timezone see the day flip at the
// server's midnight, not their own.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// IsCompleted reports whether a mission counts as completed right now.
// Daily missions require today's date; weekly and monthly missions are
// completed as soon as any completion date is recorded.
func IsCompleted(m model.Mission, today string) bool {
	if m.LastCompletionDate == "" {
		return false
	}
	if m.FrequencyType == model.FrequencyDaily {
		return m.LastCompletionDate == today
	}
	return true
}

// ApplyToggle mutates the mission in place to flip its completion
// state relative to today and returns the new state plus the signed XP
// delta.  The caller persists the mutation and the XP movement.
func ApplyToggle(m *model.Mission, today string) (completed bool, xpDelta int) {
	if IsCompleted(*m, today) {
		m.LastCompletionDate = ""
		return false, -m.XPReward
	}
	m.LastCompletionDate = today
	return true, m.XPReward
}
