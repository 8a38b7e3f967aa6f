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

type gamificationRepository struct {
	txRunner
}

// NewGamificationRepository creates a new PostgreSQL gamification repository
func NewGamificationRepository(db *pgxpool.Pool) repository.GamificationRepository {
	return &gamificationRepository{txRunner{db: db}}
}

// q resolves to the ambient transaction when the caller opened one.
func (r *gamificationRepository) q(ctx context.Context) querier {
	return querierFrom(ctx, r.db)
}

func (r *gamificationRepository) GetState(ctx context.Context, userID string) (*domain.GamificationState, error) {
	query := `
		SELECT user_id, xp, level, current_streak, longest_streak,
			COALESCE(to_char(last_check_in_date, 'YYYY-MM-DD'), ''),
			lives, missions_completed, doses_taken
		FROM gamification_state
		WHERE user_id = $1`

	var state domain.GamificationState
	err := r.q(ctx).QueryRow(ctx, query, userID).Scan(
		&state.UserID,
		&state.XP,
		&state.Level,
		&state.CurrentStreak,
		&state.LongestStreak,
		&state.LastCheckInDate,
		&state.Lives,
		&state.MissionsCompleted,
		&state.DosesTaken,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get gamification state: %w", err)
	}

	if state.Achievements, err = r.getAchievements(ctx, userID); err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *gamificationRepository) EnsureState(ctx context.Context, userID string) (*domain.GamificationState, error) {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO gamification_state (user_id)
		VALUES ($1)
		ON CONFLICT DO NOTHING`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure gamification state: %w", err)
	}
	return r.GetState(ctx, userID)
}

func (r *gamificationRepository) UpdateState(ctx context.Context, state domain.GamificationState) error {
	query := `
		UPDATE gamification_state
		SET xp = $2, level = $3, current_streak = $4, longest_streak = $5,
			last_check_in_date = NULLIF($6, '')::date,
			lives = $7, missions_completed = $8, doses_taken = $9
		WHERE user_id = $1`

	result, err := r.q(ctx).Exec(ctx, query,
		state.UserID, state.XP, state.Level, state.CurrentStreak, state.LongestStreak,
		state.LastCheckInDate, state.Lives, state.MissionsCompleted, state.DosesTaken)
	if err != nil {
		return fmt.Errorf("failed to update gamification state: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *gamificationRepository) AppendXPDelta(ctx context.Context, delta domain.XPDelta) error {
	query := `
		INSERT INTO xp_deltas (id, user_id, amount, source, recorded_at)
		VALUES ($1::uuid, $2, $3, $4, $5)`

	_, err := r.q(ctx).Exec(ctx, query,
		delta.ID, delta.UserID, delta.Amount, delta.Source, delta.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to append xp delta: %w", err)
	}
	return nil
}

func (r *gamificationRepository) GetXPDeltas(ctx context.Context, userID string, limit int) ([]domain.XPDelta, error) {
	query := `
		SELECT id::text, user_id, amount, source, recorded_at
		FROM xp_deltas
		WHERE user_id = $1
		ORDER BY recorded_at DESC, id
		LIMIT $2`

	rows, err := r.q(ctx).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query xp deltas: %w", err)
	}
	defer rows.Close()

	var deltas []domain.XPDelta
	for rows.Next() {
		var delta domain.XPDelta
		err := rows.Scan(&delta.ID, &delta.UserID, &delta.Amount, &delta.Source, &delta.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan xp delta: %w", err)
		}
		deltas = append(deltas, delta)
	}
	return deltas, rows.Err()
}

func (r *gamificationRepository) UnlockAchievement(ctx context.Context, userID, achievementID string) error {
	_, err := r.q(ctx).Exec(ctx, `
		INSERT INTO achievements_unlocked (user_id, achievement_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, userID, achievementID)
	if err != nil {
		return fmt.Errorf("failed to unlock achievement: %w", err)
	}
	return nil
}

func (r *gamificationRepository) RecordMood(ctx context.Context, checkIn domain.MoodCheckIn) error {
	query := `
		INSERT INTO mood_checkins (user_id, day, mood, recorded_at)
		VALUES ($1, $2::date, $3, $4)
		ON CONFLICT (user_id, day)
		DO UPDATE SET mood = EXCLUDED.mood, recorded_at = EXCLUDED.recorded_at`

	_, err := r.q(ctx).Exec(ctx, query,
		checkIn.UserID, checkIn.Day, string(checkIn.Mood), checkIn.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to record mood: %w", err)
	}
	return nil
}

func (r *gamificationRepository) GetMoodForDay(ctx context.Context, userID, day string) (*domain.MoodCheckIn, error) {
	query := `
		SELECT user_id, to_char(day, 'YYYY-MM-DD'), mood, recorded_at
		FROM mood_checkins
		WHERE user_id = $1 AND day = $2::date`

	var checkIn domain.MoodCheckIn
	var mood string
	err := r.q(ctx).QueryRow(ctx, query, userID, day).Scan(
		&checkIn.UserID, &checkIn.Day, &mood, &checkIn.RecordedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get mood check-in: %w", err)
	}

	checkIn.Mood = domain.Mood(mood)
	return &checkIn, nil
}

func (r *gamificationRepository) getAchievements(ctx context.Context, userID string) ([]domain.UnlockedAchievement, error) {
	rows, err := r.q(ctx).Query(ctx, `
		SELECT achievement_id, unlocked_at
		FROM achievements_unlocked
		WHERE user_id = $1
		ORDER BY unlocked_at, achievement_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var unlocked []domain.UnlockedAchievement
	for rows.Next() {
		var a domain.UnlockedAchievement
		if err := rows.Scan(&a.AchievementID, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		unlocked = append(unlocked, a)
	}
	return unlocked, rows.Err()
}
