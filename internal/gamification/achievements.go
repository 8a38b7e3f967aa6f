package gamification

import (
	"context"
	"time"

	"github.com/Loretta-Health/Webapp-sub001/internal/domain"
	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
)

// evaluateAchievements unlocks every catalog achievement whose threshold the
// state now meets. Unlocks are one-way: already-unlocked achievements are
// skipped and never revoked when a metric later regresses.
func (s *service) evaluateAchievements(ctx context.Context, state *domain.GamificationState) {
	log := logger.FromContext(ctx)

	for _, def := range s.catalog.Achievements() {
		if state.HasAchievement(def.ID) {
			continue
		}
		if metricValue(state, def.Metric) < def.Threshold {
			continue
		}

		if err := s.repo.UnlockAchievement(ctx, state.UserID, def.ID); err != nil {
			log.Error("Failed to unlock achievement",
				"user_id", state.UserID, "achievement_id", def.ID, "error", err)
			continue
		}

		state.Achievements = append(state.Achievements, domain.UnlockedAchievement{
			AchievementID: def.ID,
			UnlockedAt:    time.Now(),
		})

		log.Info("Achievement unlocked", "user_id", state.UserID, "achievement_id", def.ID)

		if s.publisher != nil {
			s.publisher.PublishWithRetry(ctx, event.NewAchievementEvent(state.UserID, def.ID))
		}
	}
}

func metricValue(state *domain.GamificationState, metric domain.AchievementMetric) int {
	switch metric {
	case domain.MetricStreak:
		return state.CurrentStreak
	case domain.MetricLevel:
		return state.Level
	case domain.MetricXP:
		return state.XP
	case domain.MetricMissionsCompleted:
		return state.MissionsCompleted
	case domain.MetricDosesTaken:
		return state.DosesTaken
	default:
		return 0
	}
}
