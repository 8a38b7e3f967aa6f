package medication

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/gamification"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
	"github.com/Loretta-Health/Webapp-sub001/internal/repository"
)

// SlotStatus pairs a scheduled dose slot with its logged outcome, if any.
type SlotStatus struct {
	domain.DoseSlot
	Taken    bool       `json:"taken"`
	Missed   bool       `json:"missed"`
	LoggedAt *time.Time `json:"logged_at,omitempty"`
}

// DayView is one medication's schedule for a single day.
type DayView struct {
	Medication domain.Medication `json:"medication"`
	Slots      []SlotStatus      `json:"slots"`
}

// DoseResult reports the outcome of logging a dose.
type DoseResult struct {
	Dose          domain.MedicationDose `json:"dose"`
	XPAwarded     int                   `json:"xp_awarded"`
	AlreadyLogged bool                  `json:"already_logged"`
}

// Service manages medication schedules, the per-day dose log and derived
// adherence. Callers are expected to hold the per-user lock.
type Service interface {
	CreateMedication(ctx context.Context, userID, name, dosage string, frequency domain.Frequency, scheduledTimes []string) (*domain.Medication, error)
	UpdateMedication(ctx context.Context, userID, medicationID, name, dosage string, frequency domain.Frequency, scheduledTimes []string) (*domain.Medication, error)
	DeleteMedication(ctx context.Context, userID, medicationID string) error
	GetMedications(ctx context.Context, userID string) ([]domain.Medication, error)

	DosesForDay(ctx context.Context, userID, day string) ([]DayView, error)
	LogDose(ctx context.Context, userID, medicationID, day string, ordinal int) (*DoseResult, error)
	LogMissedDose(ctx context.Context, userID, medicationID, day string, ordinal int) (*domain.MedicationDose, error)

	Adherence(ctx context.Context, userID, medicationID, today string, windowDays int) (*domain.AdherenceRecord, error)
	AdherenceForUser(ctx context.Context, userID, today string, windowDays int) ([]domain.AdherenceRecord, error)
}

type service struct {
	repo      repository.MedicationRepository
	gamSvc    gamification.Service
	publisher *event.ResilientPublisher
}

// NewService creates a new medication service
func NewService(repo repository.MedicationRepository, gamSvc gamification.Service, publisher *event.ResilientPublisher) Service {
	return &service{
		repo:      repo,
		gamSvc:    gamSvc,
		publisher: publisher,
	}
}

// CreateMedication validates and stores a new medication schedule.
func (s *service) CreateMedication(ctx context.Context, userID, name, dosage string, frequency domain.Frequency, scheduledTimes []string) (*domain.Medication, error) {
	if userID == "" || name == "" {
		return nil, fmt.Errorf("user id and name are required: %w", domain.ErrInvalidInput)
	}
	if err := validateSchedule(frequency, scheduledTimes); err != nil {
		return nil, err
	}

	now := time.Now()
	med := domain.Medication{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           name,
		Dosage:         dosage,
		Frequency:      frequency,
		ScheduledTimes: scheduledTimes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.CreateMedication(ctx, med); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}

	logger.FromContext(ctx).Info("Created medication",
		"user_id", userID, "medication_id", med.ID, "frequency", frequency)

	return &med, nil
}

// UpdateMedication replaces the schedule of an existing medication. Past
// dose logs are untouched; ordinals only apply within a day, so shrinking
// the schedule never rewrites history.
func (s *service) UpdateMedication(ctx context.Context, userID, medicationID, name, dosage string, frequency domain.Frequency, scheduledTimes []string) (*domain.Medication, error) {
	med, err := s.getOwnedMedication(ctx, userID, medicationID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", domain.ErrInvalidInput)
	}
	if err := validateSchedule(frequency, scheduledTimes); err != nil {
		return nil, err
	}

	med.Name = name
	med.Dosage = dosage
	med.Frequency = frequency
	med.ScheduledTimes = scheduledTimes
	med.UpdatedAt = time.Now()

	if err := s.repo.UpdateMedication(ctx, *med); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}
	return med, nil
}

// DeleteMedication removes a medication schedule.
func (s *service) DeleteMedication(ctx context.Context, userID, medicationID string) error {
	if _, err := s.getOwnedMedication(ctx, userID, medicationID); err != nil {
		return err
	}
	if err := s.repo.DeleteMedication(ctx, medicationID); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	return nil
}

// GetMedications lists the user's medications.
func (s *service) GetMedications(ctx context.Context, userID string) ([]domain.Medication, error) {
	meds, err := s.repo.GetMedicationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}
	return meds, nil
}

// getOwnedMedication loads a medication and enforces ownership. A foreign
// medication id is indistinguishable from a missing one.
func (s *service) getOwnedMedication(ctx context.Context, userID, medicationID string) (*domain.Medication, error) {
	med, err := s.repo.GetMedication(ctx, medicationID)
	if err != nil {
		return nil, err
	}
	if med.UserID != userID {
		return nil, domain.ErrMedicationNotFound
	}
	return med, nil
}
