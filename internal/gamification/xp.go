package gamification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
)

// AwardXP appends a positive delta to the ledger and recomputes the derived
// totals.
func (s *service) AwardXP(ctx context.Context, userID string, amount int, source string) (*XPResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("award amount must be non-negative: %w", domain.ErrInvalidInput)
	}
	return s.applyDelta(ctx, userID, amount, source)
}

// RetractXP appends a negative delta to the ledger. The derived XP total is
// clamped at zero; the ledger entry still records the full amount.
func (s *service) RetractXP(ctx context.Context, userID string, amount int, source string) (*XPResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("retract amount must be non-negative: %w", domain.ErrInvalidInput)
	}
	return s.applyDelta(ctx, userID, -amount, source)
}

func (s *service) applyDelta(ctx context.Context, userID string, amount int, source string) (*XPResult, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}

	state, err := s.repo.EnsureState(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gamification state: %w", err)
	}

	now := time.Now()
	delta := domain.XPDelta{
		ID:         uuid.NewString(),
		UserID:     userID,
		Amount:     amount,
		Source:     source,
		RecordedAt: now,
	}

	oldLevel := state.Level
	newXP := state.XP + amount
	if newXP < 0 {
		newXP = 0
	}
	newLevel := CalculateLevel(newXP)

	state.XP = newXP
	state.Level = newLevel

	// Ledger append and derived state commit or roll back together.
	err = s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.AppendXPDelta(ctx, delta); err != nil {
			return fmt.Errorf("failed to append XP delta: %w", err)
		}
		if err := s.repo.UpdateState(ctx, *state); err != nil {
			return fmt.Errorf("failed to update gamification state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	log.Info("Applied XP delta",
		"user_id", userID, "amount", amount, "source", source,
		"new_xp", newXP, "new_level", newLevel)

	if s.publisher != nil {
		eventType := event.XPAwarded
		if amount < 0 {
			eventType = event.XPRetracted
		}
		s.publisher.PublishWithRetry(ctx, event.NewXPEvent(eventType, userID, amount, source, newXP))

		if newLevel > oldLevel {
			s.publisher.PublishWithRetry(ctx, event.NewLevelUpEvent(userID, oldLevel, newLevel, source))
		}
	}

	s.evaluateAchievements(ctx, state)

	return &XPResult{
		XPApplied: amount,
		NewXP:     newXP,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		LeveledUp: newLevel > oldLevel,
	}, nil
}

// NoteMissionCompleted bumps the lifetime completion counter used by
// achievement thresholds.
func (s *service) NoteMissionCompleted(ctx context.Context, userID string) error {
	return s.bumpCounter(ctx, userID, func(state *domain.GamificationState) {
		state.MissionsCompleted++
	})
}

// NoteDoseTaken bumps the lifetime dose counter used by achievement
// thresholds.
func (s *service) NoteDoseTaken(ctx context.Context, userID string) error {
	return s.bumpCounter(ctx, userID, func(state *domain.GamificationState) {
		state.DosesTaken++
	})
}

func (s *service) bumpCounter(ctx context.Context, userID string, bump func(*domain.GamificationState)) error {
	state, err := s.repo.EnsureState(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get gamification state: %w", err)
	}

	bump(state)
	if err := s.repo.UpdateState(ctx, *state); err != nil {
		return fmt.Errorf("failed to update gamification state: %w", err)
	}

	s.evaluateAchievements(ctx, state)
	return nil
}
