package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/repository"
)

type medicationRepository struct {
	txRunner
}

// NewMedicationRepository creates a new PostgreSQL medication repository
func NewMedicationRepository(db *pgxpool.Pool) repository.MedicationRepository {
	return &medicationRepository{txRunner{db: db}}
}

// q resolves to the ambient transaction when the caller opened one.
func (r *medicationRepository) q(ctx context.Context) querier {
	return querierFrom(ctx, r.db)
}

const medicationColumns = `
	id::text, user_id, name, dosage, frequency, scheduled_times, created_at, updated_at`

func (r *medicationRepository) GetMedication(ctx context.Context, medicationID string) (*domain.Medication, error) {
	if _, err := parseID(medicationID); err != nil {
		return nil, domain.ErrMedicationNotFound
	}

	query := `SELECT` + medicationColumns + `
		FROM medications
		WHERE id = $1::uuid`

	med, err := scanMedication(r.q(ctx).QueryRow(ctx, query, medicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMedicationNotFound
		}
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	return med, nil
}

func (r *medicationRepository) GetMedicationsForUser(ctx context.Context, userID string) ([]domain.Medication, error) {
	query := `SELECT` + medicationColumns + `
		FROM medications
		WHERE user_id = $1
		ORDER BY created_at, id`

	rows, err := r.q(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query medications: %w", err)
	}
	defer rows.Close()

	var meds []domain.Medication
	for rows.Next() {
		med, err := scanMedication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan medication: %w", err)
		}
		meds = append(meds, *med)
	}
	return meds, rows.Err()
}

func (r *medicationRepository) CreateMedication(ctx context.Context, med domain.Medication) error {
	query := `
		INSERT INTO medications (id, user_id, name, dosage, frequency, scheduled_times, created_at, updated_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.q(ctx).Exec(ctx, query,
		med.ID, med.UserID, med.Name, med.Dosage,
		string(med.Frequency), med.ScheduledTimes, med.CreatedAt, med.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) UpdateMedication(ctx context.Context, med domain.Medication) error {
	query := `
		UPDATE medications
		SET name = $2, dosage = $3, frequency = $4, scheduled_times = $5, updated_at = $6
		WHERE id = $1::uuid`

	result, err := r.q(ctx).Exec(ctx, query,
		med.ID, med.Name, med.Dosage, string(med.Frequency), med.ScheduledTimes, med.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrMedicationNotFound
	}
	return nil
}

func (r *medicationRepository) DeleteMedication(ctx context.Context, medicationID string) error {
	result, err := r.q(ctx).Exec(ctx, `DELETE FROM medications WHERE id = $1::uuid`, medicationID)
	if err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrMedicationNotFound
	}
	return nil
}

func (r *medicationRepository) GetDoseSlots(ctx context.Context, medicationID, day string) ([]domain.DoseSlot, bool, error) {
	var materialized bool
	err := r.q(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM medication_dose_days
			WHERE medication_id = $1::uuid AND day = $2::date
		)`, medicationID, day).Scan(&materialized)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check dose day: %w", err)
	}
	if !materialized {
		return nil, false, nil
	}

	rows, err := r.q(ctx).Query(ctx, `
		SELECT ordinal, time_of_day, label
		FROM medication_dose_slots
		WHERE medication_id = $1::uuid AND day = $2::date
		ORDER BY ordinal`, medicationID, day)
	if err != nil {
		return nil, false, fmt.Errorf("failed to query dose slots: %w", err)
	}
	defer rows.Close()

	var slots []domain.DoseSlot
	for rows.Next() {
		var slot domain.DoseSlot
		if err := rows.Scan(&slot.Ordinal, &slot.TimeOfDay, &slot.Label); err != nil {
			return nil, false, fmt.Errorf("failed to scan dose slot: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, true, rows.Err()
}

func (r *medicationRepository) SaveDoseSlots(ctx context.Context, medicationID, day string, slots []domain.DoseSlot) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO medication_dose_days (medication_id, day)
		VALUES ($1::uuid, $2::date)
		ON CONFLICT DO NOTHING`, medicationID, day)
	if err != nil {
		return fmt.Errorf("failed to mark dose day: %w", err)
	}

	for _, slot := range slots {
		_, err = tx.Exec(ctx, `
			INSERT INTO medication_dose_slots (medication_id, day, ordinal, time_of_day, label)
			VALUES ($1::uuid, $2::date, $3, $4, $5)
			ON CONFLICT DO NOTHING`, medicationID, day, slot.Ordinal, slot.TimeOfDay, slot.Label)
		if err != nil {
			return fmt.Errorf("failed to insert dose slot: %w", err)
		}
	}

	return tx.Commit(ctx)
}

const doseColumns = `
	medication_id::text, user_id, to_char(day, 'YYYY-MM-DD'), ordinal, taken, missed, logged_at`

func (r *medicationRepository) GetDose(ctx context.Context, medicationID, day string, ordinal int) (*domain.MedicationDose, error) {
	query := `SELECT` + doseColumns + `
		FROM medication_doses
		WHERE medication_id = $1::uuid AND day = $2::date AND ordinal = $3`

	dose, err := scanDose(r.q(ctx).QueryRow(ctx, query, medicationID, day, ordinal))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to get dose: %w", err)
	}
	return dose, nil
}

func (r *medicationRepository) GetDosesForDay(ctx context.Context, userID, day string) ([]domain.MedicationDose, error) {
	query := `SELECT` + doseColumns + `
		FROM medication_doses
		WHERE user_id = $1 AND day = $2::date
		ORDER BY medication_id, ordinal`

	return r.queryDoses(ctx, query, userID, day)
}

func (r *medicationRepository) GetDosesForRange(ctx context.Context, userID, fromDay, toDay string) ([]domain.MedicationDose, error) {
	query := `SELECT` + doseColumns + `
		FROM medication_doses
		WHERE user_id = $1 AND day BETWEEN $2::date AND $3::date
		ORDER BY day, medication_id, ordinal`

	return r.queryDoses(ctx, query, userID, fromDay, toDay)
}

func (r *medicationRepository) UpsertDose(ctx context.Context, dose domain.MedicationDose) error {
	query := `
		INSERT INTO medication_doses (medication_id, user_id, day, ordinal, taken, missed, logged_at)
		VALUES ($1::uuid, $2, $3::date, $4, $5, $6, $7)
		ON CONFLICT (medication_id, day, ordinal)
		DO UPDATE SET taken = EXCLUDED.taken, missed = EXCLUDED.missed, logged_at = EXCLUDED.logged_at`

	_, err := r.q(ctx).Exec(ctx, query,
		dose.MedicationID, dose.UserID, dose.Day, dose.Ordinal,
		dose.Taken, dose.Missed, dose.LoggedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert dose: %w", err)
	}
	return nil
}

func (r *medicationRepository) queryDoses(ctx context.Context, query string, args ...any) ([]domain.MedicationDose, error) {
	rows, err := r.q(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query doses: %w", err)
	}
	defer rows.Close()

	var doses []domain.MedicationDose
	for rows.Next() {
		dose, err := scanDose(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan dose: %w", err)
		}
		doses = append(doses, *dose)
	}
	return doses, rows.Err()
}

func scanMedication(row pgx.Row) (*domain.Medication, error) {
	var med domain.Medication
	var frequency string

	err := row.Scan(
		&med.ID,
		&med.UserID,
		&med.Name,
		&med.Dosage,
		&frequency,
		&med.ScheduledTimes,
		&med.CreatedAt,
		&med.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	med.Frequency = domain.Frequency(frequency)
	return &med, nil
}

func scanDose(row pgx.Row) (*domain.MedicationDose, error) {
	var dose domain.MedicationDose
	err := row.Scan(
		&dose.MedicationID,
		&dose.UserID,
		&dose.Day,
		&dose.Ordinal,
		&dose.Taken,
		&dose.Missed,
		&dose.LoggedAt,
	)
	if err != nil {
		return nil, err
	}
	return &dose, nil
}
