package medication

// TimeOfDayFormat parses "HH:MM" schedule tokens
const TimeOfDayFormat = "15:04"

// Adherence windows. The default window is the current day; weekly
// schedules are always widened to at least one full cycle so off-schedule
// days cannot drag the score down artificially.
const (
	DefaultAdherenceWindowDays = 1
	WeeklyCycleDays            = 7
	MaxAdherenceWindowDays     = 90
)
