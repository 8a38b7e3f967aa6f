package gamification

import (
	"context"
	"fmt"

	"github.com/Loretta-Health/Webapp-sub001/internal/catalog"
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/repository"
)

// XPResult reports the outcome of an XP ledger mutation
type XPResult struct {
	XPApplied int  `json:"xp_applied"`
	NewXP     int  `json:"new_xp"`
	OldLevel  int  `json:"old_level"`
	NewLevel  int  `json:"new_level"`
	LeveledUp bool `json:"leveled_up"`
}

// CheckInResult reports the outcome of a daily streak check-in
type CheckInResult struct {
	CurrentStreak int  `json:"current_streak"`
	LongestStreak int  `json:"longest_streak"`
	Lives         int  `json:"lives"`
	Extended      bool `json:"extended"` // false for an idempotent same-day repeat
	WasReset      bool `json:"was_reset"`
}

// Service manages the per-user gamification aggregate: the XP ledger,
// derived level, streaks, lives and achievements. Callers are expected to
// hold the per-user lock; the service itself does plain read-modify-write.
type Service interface {
	GetState(ctx context.Context, userID string) (*domain.GamificationState, error)
	AwardXP(ctx context.Context, userID string, amount int, source string) (*XPResult, error)
	RetractXP(ctx context.Context, userID string, amount int, source string) (*XPResult, error)
	CheckIn(ctx context.Context, userID, day string) (*CheckInResult, error)
	NoteMissionCompleted(ctx context.Context, userID string) error
	NoteDoseTaken(ctx context.Context, userID string) error
	RecordMood(ctx context.Context, userID string, mood domain.Mood, day string) (*domain.MoodCheckIn, error)
	MoodForDay(ctx context.Context, userID, day string) (*domain.MoodCheckIn, error)
	XPHistory(ctx context.Context, userID string, limit int) ([]domain.XPDelta, error)
}

type service struct {
	repo      repository.GamificationRepository
	catalog   *catalog.Catalog
	publisher *event.ResilientPublisher
}

// NewService creates a new gamification service
func NewService(repo repository.GamificationRepository, cat *catalog.Catalog, publisher *event.ResilientPublisher) Service {
	return &service{
		repo:      repo,
		catalog:   cat,
		publisher: publisher,
	}
}

// GetState returns the user's aggregate, creating the default row for a
// first-time user.
func (s *service) GetState(ctx context.Context, userID string) (*domain.GamificationState, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}

	state, err := s.repo.EnsureState(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gamification state: %w", err)
	}
	return state, nil
}

// XPHistory returns the most recent ledger entries, newest first.
func (s *service) XPHistory(ctx context.Context, userID string, limit int) ([]domain.XPDelta, error) {
	if limit <= 0 || limit > MaxXPHistoryLimit {
		limit = DefaultXPHistoryLimit
	}

	deltas, err := s.repo.GetXPDeltas(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get XP history: %w", err)
	}
	return deltas, nil
}
