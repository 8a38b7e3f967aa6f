package repository

import (
	"context"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
)

type MissionRepository interface {
	// Instance lifecycle
	GetInstance(ctx context.Context, instanceID string) (*domain.MissionInstance, error)
	GetInstancesForDay(ctx context.Context, userID, day string) ([]domain.MissionInstance, error)
	CreateInstance(ctx context.Context, instance domain.MissionInstance) error
	UpdateInstance(ctx context.Context, instance domain.MissionInstance) error

	// WithinTx runs fn as one atomic unit. Repository calls made with the
	// ctx fn receives join the same transaction, across aggregates: an XP
	// write made inside fn commits or rolls back with the instance update.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
