package mission

import (
	"context"
	"fmt"

	"github.com/Loretta-Health/Webapp-sub001/internal/calendar"
	"github.com/Loretta-Health/Webapp-sub001/internal/catalog"
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/gamification"
	"github.com/Loretta-Health/Webapp-sub001/internal/repository"
)

// StepResult reports the outcome of a progress mutation.
type StepResult struct {
	Instance  domain.MissionInstance `json:"instance"`
	XPApplied int                    `json:"xp_applied"`
	Completed bool                   `json:"completed"` // this call completed the mission
	NoOp      bool                   `json:"no_op"`     // idempotent repeat, nothing changed
}

// Service is the per-user, per-day mission instance state machine. Standard
// instances materialize lazily on first access each local day; alternatives
// are created on activation and replace their original for the rest of the
// day. Callers are expected to hold the per-user lock.
type Service interface {
	MissionsForDay(ctx context.Context, userID string, day calendar.Day) ([]domain.MissionInstance, error)
	ActivateAlternative(ctx context.Context, userID string, day calendar.Day, originalMissionID, alternativeKey string) (*domain.MissionInstance, error)
	Deactivate(ctx context.Context, userID, instanceID string) (*domain.MissionInstance, error)
	LogStep(ctx context.Context, userID, instanceID string) (*StepResult, error)
	UndoStep(ctx context.Context, userID, instanceID string) (*StepResult, error)
	Complete(ctx context.Context, userID, instanceID string) (*StepResult, error)
}

type service struct {
	repo      repository.MissionRepository
	catalog   *catalog.Catalog
	gamSvc    gamification.Service
	publisher *event.ResilientPublisher
}

// NewService creates a new mission service
func NewService(repo repository.MissionRepository, cat *catalog.Catalog, gamSvc gamification.Service, publisher *event.ResilientPublisher) Service {
	return &service{
		repo:      repo,
		catalog:   cat,
		gamSvc:    gamSvc,
		publisher: publisher,
	}
}

// getOwnedInstance loads an instance and enforces ownership. A foreign
// instance id is indistinguishable from a missing one.
func (s *service) getOwnedInstance(ctx context.Context, userID, instanceID string) (*domain.MissionInstance, error) {
	instance, err := s.repo.GetInstance(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	if instance.UserID != userID {
		return nil, domain.ErrInstanceNotFound
	}
	return instance, nil
}

// onCompleted runs the bookkeeping shared by every completion path: the
// lifetime counter, the streak check-in for the instance's day, and the
// completion event.
func (s *service) onCompleted(ctx context.Context, instance *domain.MissionInstance) error {
	if err := s.gamSvc.NoteMissionCompleted(ctx, instance.UserID); err != nil {
		return fmt.Errorf("failed to note mission completion: %w", err)
	}
	// A completed mission counts as activity for the streak
	if _, err := s.gamSvc.CheckIn(ctx, instance.UserID, instance.Day); err != nil {
		return fmt.Errorf("failed to check in on completion: %w", err)
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewMissionEvent(event.MissionCompleted,
			instance.UserID, instance.ID, instance.MissionID, instance.SlotID,
			instance.Progress, instance.Day))
	}
	return nil
}
