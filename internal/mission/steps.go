package mission

import (
	"context"
	"fmt"
	"time"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/gamification"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
)

// LogStep advances an ACTIVE instance by one step. Reaching max progress
// completes the mission. Logging a step on an already-COMPLETED instance is
// an idempotent no-op and never double-awards XP.
//
// XP cadence: alternatives pay their reward on every step; standard
// step-based missions pay the full reward once, on the completing step.
func (s *service) LogStep(ctx context.Context, userID, instanceID string) (*StepResult, error) {
	instance, err := s.getOwnedInstance(ctx, userID, instanceID)
	if err != nil {
		return nil, err
	}

	switch instance.State {
	case domain.MissionStateCompleted:
		return &StepResult{Instance: *instance, NoOp: true}, nil
	case domain.MissionStateReplaced:
		return nil, fmt.Errorf("cannot log a step on a replaced mission: %w", domain.ErrInvalidTransition)
	}

	instance.Progress++
	completed := instance.Progress >= instance.MaxProgress
	if completed {
		instance.Progress = instance.MaxProgress
		instance.State = domain.MissionStateCompleted
		now := time.Now()
		instance.CompletedAt = &now
	}

	awarded := 0
	if instance.Kind == domain.MissionKindAlternative {
		awarded = instance.XPReward
	} else if completed {
		awarded = instance.XPReward
	}

	// The instance update and the XP award commit or roll back together, so
	// a failed award leaves the step loggable again.
	err = s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateInstance(ctx, *instance); err != nil {
			return fmt.Errorf("failed to update mission instance: %w", err)
		}
		if awarded > 0 {
			if _, err := s.gamSvc.AwardXP(ctx, userID, awarded, gamification.SourceMissionStep); err != nil {
				return fmt.Errorf("failed to award step XP: %w", err)
			}
		}
		if completed {
			return s.onCompleted(ctx, instance)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !completed && s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewMissionEvent(event.MissionStepLogged,
			userID, instance.ID, instance.MissionID, instance.SlotID,
			instance.Progress, instance.Day))
	}

	logger.FromContext(ctx).Info("Logged mission step",
		"user_id", userID, "instance_id", instanceID,
		"progress", instance.Progress, "completed", completed)

	return &StepResult{Instance: *instance, XPApplied: awarded, Completed: completed}, nil
}

// UndoStep walks an instance back by one step. Undoing the completing step
// reopens the mission and retracts exactly the XP that step awarded. Undo
// at zero progress is an idempotent no-op.
func (s *service) UndoStep(ctx context.Context, userID, instanceID string) (*StepResult, error) {
	instance, err := s.getOwnedInstance(ctx, userID, instanceID)
	if err != nil {
		return nil, err
	}

	if instance.State == domain.MissionStateReplaced {
		return nil, fmt.Errorf("cannot undo a step on a replaced mission: %w", domain.ErrInvalidTransition)
	}
	if instance.Progress == 0 {
		return &StepResult{Instance: *instance, NoOp: true}, nil
	}

	wasCompleted := instance.State == domain.MissionStateCompleted
	instance.Progress--
	if wasCompleted {
		instance.State = domain.MissionStateActive
		instance.CompletedAt = nil
	}

	retracted := 0
	if instance.Kind == domain.MissionKindAlternative {
		retracted = instance.XPReward
	} else if wasCompleted {
		retracted = instance.XPReward
	}

	err = s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateInstance(ctx, *instance); err != nil {
			return fmt.Errorf("failed to update mission instance: %w", err)
		}
		if retracted > 0 {
			if _, err := s.gamSvc.RetractXP(ctx, userID, retracted, gamification.SourceStepUndo); err != nil {
				return fmt.Errorf("failed to retract step XP: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewMissionEvent(event.MissionStepUndone,
			userID, instance.ID, instance.MissionID, instance.SlotID,
			instance.Progress, instance.Day))
	}

	return &StepResult{Instance: *instance, XPApplied: -retracted}, nil
}

// Complete finishes a complete-once mission. Step-based missions complete
// through their final LogStep instead. Re-completing is an idempotent
// no-op.
func (s *service) Complete(ctx context.Context, userID, instanceID string) (*StepResult, error) {
	instance, err := s.getOwnedInstance(ctx, userID, instanceID)
	if err != nil {
		return nil, err
	}

	switch instance.State {
	case domain.MissionStateCompleted:
		return &StepResult{Instance: *instance, NoOp: true}, nil
	case domain.MissionStateReplaced:
		return nil, fmt.Errorf("cannot complete a replaced mission: %w", domain.ErrInvalidTransition)
	}
	if instance.MaxProgress > 1 {
		return nil, fmt.Errorf("step-based mission completes through its final step: %w", domain.ErrInvalidTransition)
	}

	instance.Progress = instance.MaxProgress
	instance.State = domain.MissionStateCompleted
	now := time.Now()
	instance.CompletedAt = &now

	err = s.repo.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.UpdateInstance(ctx, *instance); err != nil {
			return fmt.Errorf("failed to update mission instance: %w", err)
		}
		if _, err := s.gamSvc.AwardXP(ctx, userID, instance.XPReward, gamification.SourceMissionComplete); err != nil {
			return fmt.Errorf("failed to award completion XP: %w", err)
		}
		return s.onCompleted(ctx, instance)
	})
	if err != nil {
		return nil, err
	}

	return &StepResult{Instance: *instance, XPApplied: instance.XPReward, Completed: true}, nil
}
