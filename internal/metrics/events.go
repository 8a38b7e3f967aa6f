package metrics

import (
	"context"

	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.MissionCompleted,
		event.MissionStepLogged,
		event.AlternativeActivated,
		event.XPAwarded,
		event.XPRetracted,
		event.LevelUp,
		event.StreakReset,
		event.AchievementUnlocked,
		event.DoseTaken,
		event.DoseMissed,
		event.MoodRecorded,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.MissionEventPayloadV1:
		switch evt.Type {
		case event.MissionCompleted:
			MissionsCompleted.WithLabelValues(payload.MissionID).Inc()
		case event.MissionStepLogged:
			MissionStepsLogged.WithLabelValues(payload.MissionID).Inc()
		case event.AlternativeActivated:
			AlternativesActivated.WithLabelValues(payload.MissionID).Inc()
		}

	case event.XPEventPayloadV1:
		switch evt.Type {
		case event.XPAwarded:
			XPAwarded.WithLabelValues(payload.Source).Add(float64(payload.Amount))
		case event.XPRetracted:
			XPRetracted.WithLabelValues(payload.Source).Add(float64(-payload.Amount))
		}

	case event.LevelUpPayloadV1:
		LevelUps.Inc()

	case event.StreakPayloadV1:
		if evt.Type == event.StreakReset {
			StreakResets.Inc()
		}

	case event.AchievementPayloadV1:
		AchievementsUnlocked.WithLabelValues(payload.AchievementID).Inc()

	case event.DoseEventPayloadV1:
		switch evt.Type {
		case event.DoseTaken:
			DosesTaken.Inc()
		case event.DoseMissed:
			DosesMissed.Inc()
		}

	case event.MoodPayloadV1:
		MoodsRecorded.WithLabelValues(payload.Mood).Inc()
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
