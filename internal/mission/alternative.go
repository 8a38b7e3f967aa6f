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

// ActivateAlternative substitutes an alternative mission for its standard
// original for the rest of the day. The original instance becomes REPLACED
// and keeps its progress; the alternative starts at zero. Activating the
// same alternative again while it is active returns the existing instance.
func (s *service) ActivateAlternative(ctx context.Context, userID string, day calendar.Day, originalMissionID, alternativeKey string) (*domain.MissionInstance, error) {
	if _, err := s.catalog.Mission(originalMissionID); err != nil {
		return nil, err
	}
	alt, err := s.catalog.Alternative(alternativeKey)
	if err != nil {
		return nil, err
	}
	if alt.ReplacesID != originalMissionID {
		return nil, fmt.Errorf("%s does not replace %s: %w",
			alternativeKey, originalMissionID, domain.ErrAlternativeMismatch)
	}

	if alt.MoodGateRequired {
		mood, err := s.gamSvc.MoodForDay(ctx, userID, day.String())
		if err != nil {
			return nil, err
		}
		if mood == nil || !mood.Mood.IsLow() {
			return nil, fmt.Errorf("alternative %s needs a low-mood check-in today: %w",
				alternativeKey, domain.ErrLowMoodRequired)
		}
	}

	// Materialize the day before touching the slot
	if _, err := s.MissionsForDay(ctx, userID, day); err != nil {
		return nil, err
	}

	current, err := s.slotHolder(ctx, userID, day.String(), originalMissionID)
	if err != nil {
		return nil, err
	}

	// Idempotent repeat: the alternative already holds the slot
	if current.Kind == domain.MissionKindAlternative && current.MissionID == alternativeKey {
		return current, nil
	}
	if current.State == domain.MissionStateCompleted {
		return nil, fmt.Errorf("cannot replace a finished mission: %w", domain.ErrAlreadyCompleted)
	}
	if current.Kind == domain.MissionKindAlternative {
		return nil, fmt.Errorf("slot %s already replaced by %s: %w",
			originalMissionID, current.MissionID, domain.ErrInvalidTransition)
	}

	current.State = domain.MissionStateReplaced
	instance := domain.MissionInstance{
		ID:          uuid.NewString(),
		UserID:      userID,
		MissionID:   alternativeKey,
		SlotID:      originalMissionID,
		Kind:        domain.MissionKindAlternative,
		State:       domain.MissionStateActive,
		Progress:    0,
		MaxProgress: alt.TotalSteps,
		XPReward:    alt.XPReward,
		Day:         day.String(),
		CreatedAt:   time.Now(),
	}

	// The slot never holds zero instances: replacing the original and
	// creating the alternative is one atomic unit
	err = s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateInstance(ctx, *current); err != nil {
			return fmt.Errorf("failed to replace original mission: %w", err)
		}
		if err := s.repo.CreateInstance(ctx, instance); err != nil {
			return fmt.Errorf("failed to create alternative instance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Activated alternative mission",
		"user_id", userID, "slot_id", originalMissionID, "alternative", alternativeKey)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewMissionEvent(event.AlternativeActivated,
			userID, instance.ID, alternativeKey, originalMissionID, 0, day.String()))
	}

	return &instance, nil
}

// Deactivate retires an active alternative and restores the original
// mission to ACTIVE with the progress it had at substitution time. Only
// alternatives can be deactivated, and not once they are completed.
func (s *service) Deactivate(ctx context.Context, userID, instanceID string) (*domain.MissionInstance, error) {
	instance, err := s.getOwnedInstance(ctx, userID, instanceID)
	if err != nil {
		return nil, err
	}

	if instance.Kind != domain.MissionKindAlternative {
		return nil, fmt.Errorf("only alternative missions can be deactivated: %w", domain.ErrInvalidTransition)
	}
	if instance.State == domain.MissionStateCompleted {
		return nil, fmt.Errorf("cannot deactivate a completed alternative: %w", domain.ErrAlreadyCompleted)
	}
	if instance.State != domain.MissionStateActive {
		return nil, fmt.Errorf("alternative is not active: %w", domain.ErrInvalidTransition)
	}

	original, err := s.findReplacedOriginal(ctx, instance)
	if err != nil {
		return nil, err
	}

	instance.State = domain.MissionStateReplaced
	// Preserve policy: the original resumes with its pre-substitution
	// progress
	original.State = domain.MissionStateActive

	err = s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateInstance(ctx, *instance); err != nil {
			return fmt.Errorf("failed to retire alternative: %w", err)
		}
		if err := s.repo.UpdateInstance(ctx, *original); err != nil {
			return fmt.Errorf("failed to restore original mission: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewMissionEvent(event.AlternativeDeactivated,
			userID, instance.ID, instance.MissionID, instance.SlotID,
			original.Progress, instance.Day))
	}

	return original, nil
}

// slotHolder returns the instance currently holding the slot: the one that
// is ACTIVE or COMPLETED. REPLACED instances have ceded the slot.
func (s *service) slotHolder(ctx context.Context, userID, day, slotID string) (*domain.MissionInstance, error) {
	instances, err := s.repo.GetInstancesForDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get mission instances: %w", err)
	}
	for i := range instances {
		inst := &instances[i]
		if inst.SlotID == slotID && inst.State != domain.MissionStateReplaced {
			return inst, nil
		}
	}
	return nil, fmt.Errorf("no instance holds slot %s on %s: %w", slotID, day, domain.ErrInstanceNotFound)
}

func (s *service) findReplacedOriginal(ctx context.Context, alternative *domain.MissionInstance) (*domain.MissionInstance, error) {
	instances, err := s.repo.GetInstancesForDay(ctx, alternative.UserID, alternative.Day)
	if err != nil {
		return nil, fmt.Errorf("failed to get mission instances: %w", err)
	}
	for i := range instances {
		inst := &instances[i]
		if inst.SlotID == alternative.SlotID &&
			inst.Kind == domain.MissionKindStandard &&
			inst.State == domain.MissionStateReplaced {
			return inst, nil
		}
	}
	return nil, fmt.Errorf("no replaced original for slot %s: %w", alternative.SlotID, domain.ErrInstanceNotFound)
}
