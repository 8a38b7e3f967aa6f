package domain

import "time"

// MissionKind distinguishes standard catalog missions from their
// lower-intensity alternatives.
type MissionKind string

const (
	MissionKindStandard    MissionKind = "standard"
	MissionKindAlternative MissionKind = "alternative"
)

// MissionState is the lifecycle state of a mission instance.
type MissionState string

const (
	MissionStateActive    MissionState = "ACTIVE"
	MissionStateReplaced  MissionState = "REPLACED"
	MissionStateCompleted MissionState = "COMPLETED"
)

// MissionFrequency describes how often a mission recurs.
type MissionFrequency string

const (
	MissionFrequencyDaily  MissionFrequency = "daily"
	MissionFrequencyWeekly MissionFrequency = "weekly"
)

// MissionDefinition is an immutable catalog entry for a standard mission.
type MissionDefinition struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Category   string           `json:"category"`
	Frequency  MissionFrequency `json:"frequency"`
	XPReward   int              `json:"xp_reward"`
	TotalSteps int              `json:"total_steps"` // 0 for complete-once missions
}

// StepBased reports whether progress on this mission is counted in steps.
func (d MissionDefinition) StepBased() bool {
	return d.TotalSteps > 0
}

// AlternativeDefinition is an immutable catalog entry for an alternative
// mission that substitutes a standard one for the rest of the day.
type AlternativeDefinition struct {
	Key              string `json:"key"`
	ReplacesID       string `json:"replaces_id"`
	Title            string `json:"title"`
	TotalSteps       int    `json:"total_steps"`
	XPReward         int    `json:"xp_reward"` // awarded per step
	StepLabel        string `json:"step_label"`
	MoodGateRequired bool   `json:"mood_gate_required"`
}

// MissionInstance is the per-user, per-day materialization of a mission.
// SlotID is always the standard mission id the instance occupies, so an
// alternative and the original it replaced share a slot.
type MissionInstance struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	MissionID   string       `json:"mission_id"` // standard id or alternative key
	SlotID      string       `json:"slot_id"`
	Kind        MissionKind  `json:"kind"`
	State       MissionState `json:"state"`
	Progress    int          `json:"progress"`
	MaxProgress int          `json:"max_progress"`
	XPReward    int          `json:"xp_reward"`
	Day         string       `json:"day"` // YYYY-MM-DD local calendar day
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}
