package medication

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Loretta-Health/Webapp-sub001/internal/calendar"
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

var titleCaser = cases.Title(language.English)

// validateSchedule checks scheduled time tokens against the frequency.
func validateSchedule(frequency domain.Frequency, scheduledTimes []string) error {
	switch frequency {
	case domain.FrequencyDaily:
		if len(scheduledTimes) == 0 {
			return fmt.Errorf("daily medication needs at least one scheduled time: %w", domain.ErrInvalidInput)
		}
		for _, token := range scheduledTimes {
			if _, err := time.Parse(TimeOfDayFormat, token); err != nil {
				return fmt.Errorf("invalid scheduled time %q: %w", token, domain.ErrInvalidInput)
			}
		}
	case domain.FrequencyWeekly:
		if len(scheduledTimes) == 0 {
			return fmt.Errorf("weekly medication needs at least one scheduled time: %w", domain.ErrInvalidInput)
		}
		for _, token := range scheduledTimes {
			if _, _, err := parseWeeklyToken(token); err != nil {
				return err
			}
		}
	case domain.FrequencyAsNeeded:
		if len(scheduledTimes) != 0 {
			return fmt.Errorf("as-needed medication cannot carry scheduled times: %w", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("unknown frequency %q: %w", frequency, domain.ErrInvalidInput)
	}
	return nil
}

// parseWeeklyToken splits a "weekday:HH:MM" composite token.
func parseWeeklyToken(token string) (time.Weekday, string, error) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("invalid weekly schedule token %q: %w", token, domain.ErrInvalidInput)
	}
	weekday, err := calendar.ParseWeekday(parts[0])
	if err != nil {
		return 0, "", err
	}
	if _, err := time.Parse(TimeOfDayFormat, parts[1]); err != nil {
		return 0, "", fmt.Errorf("invalid scheduled time %q: %w", token, domain.ErrInvalidInput)
	}
	return weekday, parts[1], nil
}

// DoseSlotsForDay expands a medication's schedule into the day's dose slots.
// Slot ordinals index the full ScheduledTimes list, so a weekly slot keeps
// the same ordinal on every occurrence regardless of which other weekdays
// appear in the schedule. As-needed medications have no scheduled slots.
func DoseSlotsForDay(med domain.Medication, day calendar.Day) []domain.DoseSlot {
	switch med.Frequency {
	case domain.FrequencyDaily:
		slots := make([]domain.DoseSlot, 0, len(med.ScheduledTimes))
		for i, token := range med.ScheduledTimes {
			slots = append(slots, domain.DoseSlot{
				Ordinal:   i,
				TimeOfDay: token,
				Label:     slotLabel(med.Name, token),
			})
		}
		return slots
	case domain.FrequencyWeekly:
		var slots []domain.DoseSlot
		for i, token := range med.ScheduledTimes {
			weekday, timeOfDay, err := parseWeeklyToken(token)
			if err != nil {
				continue // validated at write time; skip rather than fail reads
			}
			if weekday != day.Weekday() {
				continue
			}
			slots = append(slots, domain.DoseSlot{
				Ordinal:   i,
				TimeOfDay: timeOfDay,
				Label:     slotLabel(med.Name, timeOfDay),
			})
		}
		return slots
	default:
		return nil
	}
}

func slotLabel(name, timeOfDay string) string {
	return fmt.Sprintf("%s at %s", titleCaser.String(name), timeOfDay)
}
