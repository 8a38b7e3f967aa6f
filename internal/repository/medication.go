package repository

import (
	"context"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

type MedicationRepository interface {
	// Schedule management
	GetMedication(ctx context.Context, medicationID string) (*domain.Medication, error)
	GetMedicationsForUser(ctx context.Context, userID string) ([]domain.Medication, error)
	CreateMedication(ctx context.Context, med domain.Medication) error
	UpdateMedication(ctx context.Context, med domain.Medication) error
	DeleteMedication(ctx context.Context, medicationID string) error

	// Materialized per-day slot sets. A day's slots are generated from the
	// schedule at first access and never regenerated, so mid-day schedule
	// edits take effect the following day.
	GetDoseSlots(ctx context.Context, medicationID, day string) ([]domain.DoseSlot, bool, error)
	SaveDoseSlots(ctx context.Context, medicationID, day string, slots []domain.DoseSlot) error

	// Dose log
	GetDose(ctx context.Context, medicationID, day string, ordinal int) (*domain.MedicationDose, error)
	GetDosesForDay(ctx context.Context, userID, day string) ([]domain.MedicationDose, error)
	GetDosesForRange(ctx context.Context, userID, fromDay, toDay string) ([]domain.MedicationDose, error)
	UpsertDose(ctx context.Context, dose domain.MedicationDose) error

	// WithinTx runs fn as one atomic unit. Repository calls made with the
	// ctx fn receives join the same transaction, across aggregates.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
