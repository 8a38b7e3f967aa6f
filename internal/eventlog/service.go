// Package eventlog persists every domain event to the database, giving the
// dashboard an auditable activity history alongside the live aggregates.
package eventlog

import (
	"context"
	"encoding/json"

	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
)

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger to listen to all events
	Subscribe(bus event.Bus) error

	// CleanupOldEvents removes events older than retention period
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new event logging service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Subscribe registers event handlers for all event types
func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		event.MissionCompleted,
		event.MissionStepLogged,
		event.MissionStepUndone,
		event.AlternativeActivated,
		event.AlternativeDeactivated,
		event.DayRolledOver,
		event.XPAwarded,
		event.XPRetracted,
		event.LevelUp,
		event.StreakExtended,
		event.StreakReset,
		event.AchievementUnlocked,
		event.MoodRecorded,
		event.DoseTaken,
		event.DoseMissed,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

// handleEvent processes and logs events to the database. Payloads are typed
// structs; round-trip through JSON to get the generic map the log stores.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := payloadToMap(evt.Payload)
	if err != nil {
		log.Debug(LogMsgPayloadNotSerializable, "type", evt.Type, "error", err)
		return nil
	}

	var userID *string
	if uid, ok := payload[PayloadKeyUserID].(string); ok {
		userID = &uid
	}

	var metadata map[string]interface{}
	if evt.Metadata != nil {
		metadata, _ = payloadToMap(evt.Metadata)
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, payload, metadata); err != nil {
		log.Error(LogMsgFailedToLogEvent, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "user_id", userID)
	return nil
}

func payloadToMap(v interface{}) (map[string]interface{}, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// CleanupOldEvents removes events older than the retention period
func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
