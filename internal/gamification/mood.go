package gamification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/event"
)

// RecordMood stores the user's mood for the given day. A later check-in on
// the same day overwrites the earlier one.
func (s *service) RecordMood(ctx context.Context, userID string, mood domain.Mood, day string) (*domain.MoodCheckIn, error) {
	if userID == "" {
		return nil, domain.ErrUserNotFound
	}
	if !domain.ValidMoods[mood] {
		return nil, fmt.Errorf("unknown mood %q: %w", mood, domain.ErrInvalidInput)
	}

	checkIn := domain.MoodCheckIn{
		UserID:     userID,
		Mood:       mood,
		Day:        day,
		RecordedAt: time.Now(),
	}
	if err := s.repo.RecordMood(ctx, checkIn); err != nil {
		return nil, fmt.Errorf("failed to record mood: %w", err)
	}

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewMoodEvent(userID, string(mood), day))
	}

	return &checkIn, nil
}

// MoodForDay returns the mood recorded for the day, or nil when none exists.
func (s *service) MoodForDay(ctx context.Context, userID, day string) (*domain.MoodCheckIn, error) {
	checkIn, err := s.repo.GetMoodForDay(ctx, userID, day)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mood: %w", err)
	}
	return checkIn, nil
}
