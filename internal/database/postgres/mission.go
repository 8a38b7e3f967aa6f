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

type missionRepository struct {
	txRunner
}

// NewMissionRepository creates a new PostgreSQL mission repository
func NewMissionRepository(db *pgxpool.Pool) repository.MissionRepository {
	return &missionRepository{txRunner{db: db}}
}

// q resolves to the ambient transaction when the caller opened one.
func (r *missionRepository) q(ctx context.Context) querier {
	return querierFrom(ctx, r.db)
}

const missionInstanceColumns = `
	id::text, user_id, mission_id, slot_id, kind, state,
	progress, max_progress, xp_reward,
	to_char(day, 'YYYY-MM-DD'), created_at, completed_at`

func (r *missionRepository) GetInstance(ctx context.Context, instanceID string) (*domain.MissionInstance, error) {
	if _, err := parseID(instanceID); err != nil {
		return nil, domain.ErrInstanceNotFound
	}

	query := `SELECT` + missionInstanceColumns + `
		FROM mission_instances
		WHERE id = $1::uuid`

	instance, err := scanMissionInstance(r.q(ctx).QueryRow(ctx, query, instanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstanceNotFound
		}
		return nil, fmt.Errorf("failed to get mission instance: %w", err)
	}
	return instance, nil
}

func (r *missionRepository) GetInstancesForDay(ctx context.Context, userID, day string) ([]domain.MissionInstance, error) {
	query := `SELECT` + missionInstanceColumns + `
		FROM mission_instances
		WHERE user_id = $1 AND day = $2::date
		ORDER BY created_at, id`

	rows, err := r.q(ctx).Query(ctx, query, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query mission instances: %w", err)
	}
	defer rows.Close()

	var instances []domain.MissionInstance
	for rows.Next() {
		instance, err := scanMissionInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission instance: %w", err)
		}
		instances = append(instances, *instance)
	}
	return instances, rows.Err()
}

func (r *missionRepository) CreateInstance(ctx context.Context, instance domain.MissionInstance) error {
	query := `
		INSERT INTO mission_instances
			(id, user_id, mission_id, slot_id, kind, state, progress, max_progress, xp_reward, day, created_at, completed_at)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10::date, $11, $12)`

	_, err := r.q(ctx).Exec(ctx, query,
		instance.ID, instance.UserID, instance.MissionID, instance.SlotID,
		string(instance.Kind), string(instance.State),
		instance.Progress, instance.MaxProgress, instance.XPReward,
		instance.Day, instance.CreatedAt, instance.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to create mission instance: %w", err)
	}
	return nil
}

func (r *missionRepository) UpdateInstance(ctx context.Context, instance domain.MissionInstance) error {
	query := `
		UPDATE mission_instances
		SET state = $2, progress = $3, completed_at = $4
		WHERE id = $1::uuid`

	result, err := r.q(ctx).Exec(ctx, query,
		instance.ID, string(instance.State), instance.Progress, instance.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to update mission instance: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrInstanceNotFound
	}
	return nil
}

func scanMissionInstance(row pgx.Row) (*domain.MissionInstance, error) {
	var instance domain.MissionInstance
	var kind, state string

	err := row.Scan(
		&instance.ID,
		&instance.UserID,
		&instance.MissionID,
		&instance.SlotID,
		&kind,
		&state,
		&instance.Progress,
		&instance.MaxProgress,
		&instance.XPReward,
		&instance.Day,
		&instance.CreatedAt,
		&instance.CompletedAt,
	)
	if err != nil {
		return nil, err
	}

	instance.Kind = domain.MissionKind(kind)
	instance.State = domain.MissionState(state)
	return &instance, nil
}
