package medication

import (
	"context"
	"fmt"

	"github.com/Loretta-Health/Webapp-sub001/internal/calendar"
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

// Adherence computes the taken/scheduled ratio for one medication over the
// trailing window ending at today (inclusive). A window with nothing
// scheduled reports 100, as do as-needed medications.
func (s *service) Adherence(ctx context.Context, userID, medicationID, today string, windowDays int) (*domain.AdherenceRecord, error) {
	med, err := s.getOwnedMedication(ctx, userID, medicationID)
	if err != nil {
		return nil, err
	}
	return s.adherenceForMedication(ctx, *med, today, windowDays)
}

// AdherenceForUser computes adherence for every medication the user has.
func (s *service) AdherenceForUser(ctx context.Context, userID, today string, windowDays int) ([]domain.AdherenceRecord, error) {
	meds, err := s.repo.GetMedicationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}

	records := make([]domain.AdherenceRecord, 0, len(meds))
	for _, med := range meds {
		record, err := s.adherenceForMedication(ctx, med, today, windowDays)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func (s *service) adherenceForMedication(ctx context.Context, med domain.Medication, today string, windowDays int) (*domain.AdherenceRecord, error) {
	endDay, err := calendar.ParseDay(today)
	if err != nil {
		return nil, err
	}
	if windowDays <= 0 || windowDays > MaxAdherenceWindowDays {
		windowDays = DefaultAdherenceWindowDays
	}
	if med.Frequency == domain.FrequencyWeekly && windowDays < WeeklyCycleDays {
		windowDays = WeeklyCycleDays
	}
	startDay := endDay.AddDays(-(windowDays - 1))

	record := &domain.AdherenceRecord{
		MedicationID: med.ID,
		WindowDays:   windowDays,
	}

	doses, err := s.repo.GetDosesForRange(ctx, med.UserID, startDay.String(), endDay.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get doses: %w", err)
	}
	for _, d := range doses {
		if d.MedicationID == med.ID && d.Taken {
			record.TakenCount++
		}
	}

	if med.Frequency == domain.FrequencyAsNeeded {
		// No schedule to adhere to
		record.Percent = 100
		return record, nil
	}

	// Materialized days keep the slot set they were logged against, so a
	// schedule edit mid-window cannot retroactively change past denominators.
	// Unmaterialized days fall back to the current schedule.
	for day := startDay; !endDay.Before(day); day = day.Next() {
		slots, ok, err := s.repo.GetDoseSlots(ctx, med.ID, day.String())
		if err != nil {
			return nil, fmt.Errorf("failed to get dose slots: %w", err)
		}
		if !ok {
			slots = DoseSlotsForDay(med, day)
		}
		record.ScheduledCount += len(slots)
	}

	if record.ScheduledCount == 0 {
		record.Percent = 100
	} else {
		// Rounded, never NaN and never an error on an empty schedule
		record.Percent = (record.TakenCount*100 + record.ScheduledCount/2) / record.ScheduledCount
	}
	return record, nil
}
