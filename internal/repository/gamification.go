package repository

import (
	"context"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

type GamificationRepository interface {
	// Aggregate state. GetState returns domain.ErrUserNotFound for unknown
	// users; EnsureState creates the default row if missing.
	GetState(ctx context.Context, userID string) (*domain.GamificationState, error)
	EnsureState(ctx context.Context, userID string) (*domain.GamificationState, error)
	UpdateState(ctx context.Context, state domain.GamificationState) error

	// Append-only XP ledger
	AppendXPDelta(ctx context.Context, delta domain.XPDelta) error
	GetXPDeltas(ctx context.Context, userID string, limit int) ([]domain.XPDelta, error)

	// Achievements
	UnlockAchievement(ctx context.Context, userID, achievementID string) error

	// Mood check-ins, one per user per day (later writes overwrite)
	RecordMood(ctx context.Context, checkIn domain.MoodCheckIn) error
	GetMoodForDay(ctx context.Context, userID, day string) (*domain.MoodCheckIn, error)

	// WithinTx runs fn as one atomic unit. Repository calls made with the
	// ctx fn receives join the same transaction, so the ledger append and
	// the derived state update commit or roll back together.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
