package domain

import "time"

// Frequency describes how a medication is scheduled.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyAsNeeded Frequency = "as-needed"
)

// Medication is a user's configured medication with its schedule.
// ScheduledTimes entries are "HH:MM" for daily medications and
// "weekday:HH:MM" composites (lowercase English weekday) for weekly ones.
// As-needed medications carry no scheduled times.
type Medication struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Dosage         string    `json:"dosage"`
	Frequency      Frequency `json:"frequency"`
	ScheduledTimes []string  `json:"scheduled_times"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DoseSlot is one scheduled medication-taking opportunity on a given day.
// Ordinal is the position of the slot's token within the medication's full
// ScheduledTimes list, not its position among the day's filtered subset.
type DoseSlot struct {
	Ordinal   int    `json:"ordinal"`
	TimeOfDay string `json:"time_of_day"` // HH:MM
	Label     string `json:"label"`
}

// MedicationDose is the logged outcome of a dose slot. Taken and Missed
// are mutually exclusive; once either is set the other path is rejected.
type MedicationDose struct {
	MedicationID string     `json:"medication_id"`
	UserID       string     `json:"user_id"`
	Day          string     `json:"day"` // YYYY-MM-DD local calendar day
	Ordinal      int        `json:"ordinal"`
	Taken        bool       `json:"taken"`
	Missed       bool       `json:"missed"`
	LoggedAt     *time.Time `json:"logged_at,omitempty"`
}

// AdherenceRecord is a derived adherence summary over a trailing window.
// It is computed on demand and never stored.
type AdherenceRecord struct {
	MedicationID   string `json:"medication_id"`
	WindowDays     int    `json:"window_days"`
	TakenCount     int    `json:"taken_count"`
	ScheduledCount int    `json:"scheduled_count"`
	Percent        int    `json:"percent"`
}
