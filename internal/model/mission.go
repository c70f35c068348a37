package model

import "time"

// Frequency values accepted for a mission cadence.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Mission is a per-user recurring task.  Daily missions reset every
// calendar day; weekly and monthly missions stay completed once done.
// LastCompletionDate holds an ISO date string ("2006-01-02") rather
// than a timestamp because completion is compared against the
// server's local calendar date, not an instant.
//
// Fields:
//  ID                 – primary key identifier.
//  UserID             – member the mission belongs to.
//  Title              – short display title.
//  FrequencyType      – daily, weekly or monthly.
//  LastCompletionDate – ISO date of the most recent completion, empty
//                       when the mission is currently incomplete.
//  XPReward           – XP awarded on completion (and deducted on undo).
//  Progress           – free-form progress counter for partial missions.
//  CreatedAt          – creation timestamp.
type Mission struct {
	ID                 uint64    // user_missions.id
	UserID             uint64    // user_missions.user_id
	Title              string    // user_missions.title
	FrequencyType      string    // user_missions.frequency_type
	LastCompletionDate string    // user_missions.last_completion_date ("" when incomplete)
	XPReward           int       // user_missions.xp_reward
	Progress           int       // user_missions.progress
	CreatedAt          time.Time // user_missions.created_at
}
