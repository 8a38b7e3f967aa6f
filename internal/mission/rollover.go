package mission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Loretta-Health/Webapp-sub001/internal/calendar"
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
)

// MissionsForDay returns the user's mission instances for the day,
// materializing a fresh ACTIVE set from the catalog on first access. The
// rollover is idempotent: if instances already exist for the day they are
// returned untouched, so repeated and concurrent-looking invocations are
// safe. Yesterday's instances are superseded, never deleted.
func (s *service) MissionsForDay(ctx context.Context, userID string, day calendar.Day) ([]domain.MissionInstance, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}

	instances, err := s.repo.GetInstancesForDay(ctx, userID, day.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get mission instances: %w", err)
	}
	if len(instances) > 0 {
		return instances, nil
	}

	now := time.Now()
	for _, def := range s.catalog.Missions() {
		maxProgress := def.TotalSteps
		if maxProgress == 0 {
			maxProgress = 1 // complete-once missions
		}
		instance := domain.MissionInstance{
			ID:          uuid.NewString(),
			UserID:      userID,
			MissionID:   def.ID,
			SlotID:      def.ID,
			Kind:        domain.MissionKindStandard,
			State:       domain.MissionStateActive,
			Progress:    0,
			MaxProgress: maxProgress,
			XPReward:    def.XPReward,
			Day:         day.String(),
			CreatedAt:   now,
		}
		if err := s.repo.CreateInstance(ctx, instance); err != nil {
			return nil, fmt.Errorf("failed to create mission instance: %w", err)
		}
		instances = append(instances, instance)
	}

	logger.FromContext(ctx).Info("Materialized mission day",
		"user_id", userID, "day", day.String(), "instances", len(instances))

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewMissionEvent(event.DayRolledOver,
			userID, "", "", "", 0, day.String()))
	}

	return instances, nil
}
