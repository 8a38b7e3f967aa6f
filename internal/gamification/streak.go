package gamification

import (
	"context"
	"fmt"

	"github.com/Loretta-Health/Webapp-sub001/internal/calendar"
	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
)

// CheckIn records activity for the given calendar day and advances the
// streak. A repeat check-in on the same day is an idempotent no-op, never an
// error. A check-in after a gap resets the streak to 1 and costs one life
// (floored at zero).
func (s *service) CheckIn(ctx context.Context, userID, day string) (*CheckInResult, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}

	today, err := calendar.ParseDay(day)
	if err != nil {
		return nil, err
	}

	state, err := s.repo.EnsureState(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get gamification state: %w", err)
	}

	// Same-day repeat
	if state.LastCheckInDate == day {
		return &CheckInResult{
			CurrentStreak: state.CurrentStreak,
			LongestStreak: state.LongestStreak,
			Lives:         state.Lives,
			Extended:      false,
		}, nil
	}

	wasReset := false
	switch {
	case state.LastCheckInDate == "":
		// First ever check-in
		state.CurrentStreak = 1
	default:
		last, err := calendar.ParseDay(state.LastCheckInDate)
		if err != nil {
			return nil, fmt.Errorf("corrupt last check-in date %q: %w", state.LastCheckInDate, err)
		}
		if today.Before(last) {
			// Clock went backwards relative to stored state; ignore
			return &CheckInResult{
				CurrentStreak: state.CurrentStreak,
				LongestStreak: state.LongestStreak,
				Lives:         state.Lives,
				Extended:      false,
			}, nil
		}
		if today.DaysSince(last) == 1 {
			state.CurrentStreak++
		} else {
			state.CurrentStreak = 1
			wasReset = true
			if state.Lives > 0 {
				state.Lives--
			}
		}
	}

	if state.CurrentStreak > state.LongestStreak {
		state.LongestStreak = state.CurrentStreak
	}
	state.LastCheckInDate = day

	if err := s.repo.UpdateState(ctx, *state); err != nil {
		return nil, fmt.Errorf("failed to update gamification state: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info("Streak check-in",
		"user_id", userID, "day", day,
		"streak", state.CurrentStreak, "was_reset", wasReset, "lives", state.Lives)

	if s.publisher != nil {
		eventType := event.StreakExtended
		if wasReset {
			eventType = event.StreakReset
		}
		s.publisher.PublishWithRetry(ctx,
			event.NewStreakEvent(eventType, userID, state.CurrentStreak, state.LongestStreak, day))
	}

	s.evaluateAchievements(ctx, state)

	return &CheckInResult{
		CurrentStreak: state.CurrentStreak,
		LongestStreak: state.LongestStreak,
		Lives:         state.Lives,
		Extended:      true,
		WasReset:      wasReset,
	}, nil
}
