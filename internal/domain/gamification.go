package domain

import "time"

// Mood is the user's self-reported emotional state from a mood check-in.
type Mood string

const (
	MoodGreat    Mood = "great"
	MoodGood     Mood = "good"
	MoodOkay     Mood = "okay"
	MoodLow      Mood = "low"
	MoodTerrible Mood = "terrible"
)

// ValidMoods enumerates accepted mood values.
var ValidMoods = map[Mood]bool{
	MoodGreat:    true,
	MoodGood:     true,
	MoodOkay:     true,
	MoodLow:      true,
	MoodTerrible: true,
}

// IsLow reports whether the mood satisfies a low-mood gate.
func (m Mood) IsLow() bool {
	return m == MoodLow || m == MoodTerrible
}

// MoodCheckIn is the latest recorded emotional check-in for a user.
type MoodCheckIn struct {
	UserID     string    `json:"user_id"`
	Mood       Mood      `json:"mood"`
	Day        string    `json:"day"` // YYYY-MM-DD local calendar day
	RecordedAt time.Time `json:"recorded_at"`
}

// XPDelta is one signed entry in the append-only XP ledger.
type XPDelta struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Amount     int       `json:"amount"` // negative for retractions
	Source     string    `json:"source"`
	RecordedAt time.Time `json:"recorded_at"`
}

// AchievementMetric names the state dimension an achievement thresholds on.
type AchievementMetric string

const (
	MetricStreak            AchievementMetric = "streak"
	MetricLevel             AchievementMetric = "level"
	MetricXP                AchievementMetric = "xp"
	MetricMissionsCompleted AchievementMetric = "missions_completed"
	MetricDosesTaken        AchievementMetric = "doses_taken"
)

// AchievementDefinition is an immutable catalog entry for an unlockable
// milestone.
type AchievementDefinition struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Metric      AchievementMetric `json:"metric"`
	Threshold   int               `json:"threshold"`
}

// UnlockedAchievement records a one-way unlock. Unlocks are never revoked
// even if the triggering metric later regresses.
type UnlockedAchievement struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// GamificationState is the derived per-user gamification aggregate.
// XP is always max(0, sum of ledger deltas) and Level is a pure function
// of XP; neither is ever mutated independently of the ledger.
type GamificationState struct {
	UserID            string                `json:"user_id"`
	XP                int                   `json:"xp"`
	Level             int                   `json:"level"`
	CurrentStreak     int                   `json:"current_streak"`
	LongestStreak     int                   `json:"longest_streak"`
	LastCheckInDate   string                `json:"last_check_in_date,omitempty"` // YYYY-MM-DD
	Lives             int                   `json:"lives"`
	MissionsCompleted int                   `json:"missions_completed"`
	DosesTaken        int                   `json:"doses_taken"`
	Achievements      []UnlockedAchievement `json:"achievements"`
}

// HasAchievement reports whether the achievement id is already unlocked.
func (s *GamificationState) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a.AchievementID == id {
			return true
		}
	}
	return false
}

// DefaultLives is the number of lives a fresh user starts with.
const DefaultLives = 3
