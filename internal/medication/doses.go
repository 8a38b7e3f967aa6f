package medication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Loretta-Health/Webapp-sub001/internal/calendar"
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/gamification"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
)

// DosesForDay returns every medication's slots for the day joined with the
// logged outcomes. As-needed medications appear with their ad hoc logs as
// synthetic slots.
func (s *service) DosesForDay(ctx context.Context, userID, day string) ([]DayView, error) {
	parsedDay, err := calendar.ParseDay(day)
	if err != nil {
		return nil, err
	}

	meds, err := s.repo.GetMedicationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}

	doses, err := s.repo.GetDosesForDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get doses: %w", err)
	}

	type doseKey struct {
		medicationID string
		ordinal      int
	}
	doseByKey := make(map[doseKey]domain.MedicationDose, len(doses))
	for _, d := range doses {
		doseByKey[doseKey{d.MedicationID, d.Ordinal}] = d
	}

	views := make([]DayView, 0, len(meds))
	for _, med := range meds {
		view := DayView{Medication: med}

		if med.Frequency == domain.FrequencyAsNeeded {
			for _, d := range doses {
				if d.MedicationID != med.ID {
					continue
				}
				view.Slots = append(view.Slots, SlotStatus{
					DoseSlot: domain.DoseSlot{
						Ordinal: d.Ordinal,
						Label:   slotLabel(med.Name, "as needed"),
					},
					Taken:    d.Taken,
					Missed:   d.Missed,
					LoggedAt: d.LoggedAt,
				})
			}
			views = append(views, view)
			continue
		}

		slots, err := s.slotsForDay(ctx, med, parsedDay)
		if err != nil {
			return nil, err
		}
		for _, slot := range slots {
			status := SlotStatus{DoseSlot: slot}
			if d, ok := doseByKey[doseKey{med.ID, slot.Ordinal}]; ok {
				status.Taken = d.Taken
				status.Missed = d.Missed
				status.LoggedAt = d.LoggedAt
			}
			view.Slots = append(view.Slots, status)
		}
		views = append(views, view)
	}

	return views, nil
}

// LogDose marks a dose slot taken. Re-logging an already-taken slot is an
// idempotent no-op; logging a slot already marked missed is a conflict.
// For as-needed medications the ordinal argument is ignored and the next
// free ordinal for the day is assigned.
func (s *service) LogDose(ctx context.Context, userID, medicationID, day string, ordinal int) (*DoseResult, error) {
	parsedDay, err := calendar.ParseDay(day)
	if err != nil {
		return nil, err
	}

	med, err := s.getOwnedMedication(ctx, userID, medicationID)
	if err != nil {
		return nil, err
	}

	if med.Frequency == domain.FrequencyAsNeeded {
		return s.logAsNeededDose(ctx, med, day)
	}

	if err := s.validateOrdinal(ctx, *med, parsedDay, ordinal); err != nil {
		return nil, err
	}

	existing, err := s.getDose(ctx, medicationID, day, ordinal)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Taken {
			return &DoseResult{Dose: *existing, AlreadyLogged: true}, nil
		}
		if existing.Missed {
			return nil, fmt.Errorf("slot %d on %s already marked missed: %w", ordinal, day, domain.ErrDoseConflict)
		}
	}

	now := time.Now()
	dose := domain.MedicationDose{
		MedicationID: medicationID,
		UserID:       userID,
		Day:          day,
		Ordinal:      ordinal,
		Taken:        true,
		LoggedAt:     &now,
	}
	return s.persistTakenDose(ctx, dose)
}

func (s *service) logAsNeededDose(ctx context.Context, med *domain.Medication, day string) (*DoseResult, error) {
	doses, err := s.repo.GetDosesForDay(ctx, med.UserID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get doses: %w", err)
	}

	next := 0
	for _, d := range doses {
		if d.MedicationID == med.ID && d.Ordinal >= next {
			next = d.Ordinal + 1
		}
	}

	now := time.Now()
	dose := domain.MedicationDose{
		MedicationID: med.ID,
		UserID:       med.UserID,
		Day:          day,
		Ordinal:      next,
		Taken:        true,
		LoggedAt:     &now,
	}
	return s.persistTakenDose(ctx, dose)
}

func (s *service) persistTakenDose(ctx context.Context, dose domain.MedicationDose) (*DoseResult, error) {
	// The dose row and the XP award commit or roll back together, so a failed
	// award leaves the slot loggable again.
	var xpResult *gamification.XPResult
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpsertDose(ctx, dose); err != nil {
			return fmt.Errorf("failed to log dose: %w", err)
		}

		var err error
		xpResult, err = s.gamSvc.AwardXP(ctx, dose.UserID, gamification.XPPerDose, gamification.SourceDoseTaken)
		if err != nil {
			return fmt.Errorf("failed to award dose XP: %w", err)
		}
		return s.gamSvc.NoteDoseTaken(ctx, dose.UserID)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Logged dose",
		"user_id", dose.UserID, "medication_id", dose.MedicationID,
		"day", dose.Day, "ordinal", dose.Ordinal)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx,
			event.NewDoseEvent(event.DoseTaken, dose.UserID, dose.MedicationID, dose.Ordinal, dose.Day))
	}

	return &DoseResult{Dose: dose, XPAwarded: xpResult.XPApplied}, nil
}

// LogMissedDose marks a dose slot missed. Re-marking a missed slot is an
// idempotent no-op; marking a slot already taken is a conflict. No XP moves
// either way.
func (s *service) LogMissedDose(ctx context.Context, userID, medicationID, day string, ordinal int) (*domain.MedicationDose, error) {
	parsedDay, err := calendar.ParseDay(day)
	if err != nil {
		return nil, err
	}

	med, err := s.getOwnedMedication(ctx, userID, medicationID)
	if err != nil {
		return nil, err
	}
	if med.Frequency == domain.FrequencyAsNeeded {
		return nil, fmt.Errorf("as-needed medication has no slots to miss: %w", domain.ErrInvalidDoseSlot)
	}

	if err := s.validateOrdinal(ctx, *med, parsedDay, ordinal); err != nil {
		return nil, err
	}

	existing, err := s.getDose(ctx, medicationID, day, ordinal)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Missed {
			return existing, nil
		}
		if existing.Taken {
			return nil, fmt.Errorf("slot %d on %s already taken: %w", ordinal, day, domain.ErrDoseConflict)
		}
	}

	now := time.Now()
	dose := domain.MedicationDose{
		MedicationID: medicationID,
		UserID:       userID,
		Day:          day,
		Ordinal:      ordinal,
		Missed:       true,
		LoggedAt:     &now,
	}
	if err := s.repo.UpsertDose(ctx, dose); err != nil {
		return nil, fmt.Errorf("failed to log missed dose: %w", err)
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx,
			event.NewDoseEvent(event.DoseMissed, userID, medicationID, ordinal, day))
	}

	return &dose, nil
}

// getDose fetches a dose row, mapping not-found to nil.
func (s *service) getDose(ctx context.Context, medicationID, day string, ordinal int) (*domain.MedicationDose, error) {
	dose, err := s.repo.GetDose(ctx, medicationID, day, ordinal)
	if err != nil {
		if errors.Is(err, domain.ErrInstanceNotFound) || errors.Is(err, domain.ErrMedicationNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dose: %w", err)
	}
	return dose, nil
}

// slotsForDay returns the day's materialized slot set, generating and
// persisting it from the current schedule on first access. Once stored, the
// set is never regenerated, so a mid-day schedule edit only shows up the
// following day.
func (s *service) slotsForDay(ctx context.Context, med domain.Medication, day calendar.Day) ([]domain.DoseSlot, error) {
	if med.Frequency == domain.FrequencyAsNeeded {
		return nil, nil
	}

	slots, ok, err := s.repo.GetDoseSlots(ctx, med.ID, day.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get dose slots: %w", err)
	}
	if ok {
		return slots, nil
	}

	slots = DoseSlotsForDay(med, day)
	if err := s.repo.SaveDoseSlots(ctx, med.ID, day.String(), slots); err != nil {
		return nil, fmt.Errorf("failed to save dose slots: %w", err)
	}
	return slots, nil
}

// validateOrdinal checks the ordinal names one of the day's materialized
// slots.
func (s *service) validateOrdinal(ctx context.Context, med domain.Medication, day calendar.Day, ordinal int) error {
	slots, err := s.slotsForDay(ctx, med, day)
	if err != nil {
		return err
	}
	for _, slot := range slots {
		if slot.Ordinal == ordinal {
			return nil
		}
	}
	return fmt.Errorf("%w: medication %s has no slot %d on %s",
		domain.ErrInvalidDoseSlot, med.ID, ordinal, day)
}
