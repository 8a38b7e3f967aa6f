package event

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// Common event types
const (
	MissionCompleted       Type = "mission.completed"
	MissionStepLogged      Type = "mission.step.logged"
	MissionStepUndone      Type = "mission.step.undone"
	AlternativeActivated   Type = "mission.alternative.activated"
	AlternativeDeactivated Type = "mission.alternative.deactivated"
	DayRolledOver          Type = "mission.day.rolled_over"

	XPAwarded           Type = "gamification.xp.awarded"
	XPRetracted         Type = "gamification.xp.retracted"
	LevelUp             Type = "gamification.level.up"
	StreakExtended      Type = "gamification.streak.extended"
	StreakReset         Type = "gamification.streak.reset"
	AchievementUnlocked Type = "gamification.achievement.unlocked"
	MoodRecorded        Type = "gamification.mood.recorded"

	DoseTaken  Type = "medication.dose.taken"
	DoseMissed Type = "medication.dose.missed"
)

// Typed event payloads for type safety

// MissionEventPayloadV1 is the typed payload for mission lifecycle events
type MissionEventPayloadV1 struct {
	UserID     string `json:"user_id"`
	InstanceID string `json:"instance_id"`
	MissionID  string `json:"mission_id"`
	SlotID     string `json:"slot_id"`
	Progress   int    `json:"progress"`
	Day        string `json:"day"`
	Timestamp  int64  `json:"timestamp"`
}

// XPEventPayloadV1 is the typed payload for XP ledger events
type XPEventPayloadV1 struct {
	UserID    string `json:"user_id"`
	Amount    int    `json:"amount"`
	Source    string `json:"source"`
	NewXP     int    `json:"new_xp"`
	Timestamp int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level up events
type LevelUpPayloadV1 struct {
	UserID   string `json:"user_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	Source   string `json:"source,omitempty"`
}

// StreakPayloadV1 is the typed payload for streak events
type StreakPayloadV1 struct {
	UserID        string `json:"user_id"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	Day           string `json:"day"`
}

// AchievementPayloadV1 is the typed payload for achievement unlock events
type AchievementPayloadV1 struct {
	UserID        string `json:"user_id"`
	AchievementID string `json:"achievement_id"`
	Timestamp     int64  `json:"timestamp"`
}

// DoseEventPayloadV1 is the typed payload for dose log events
type DoseEventPayloadV1 struct {
	UserID       string `json:"user_id"`
	MedicationID string `json:"medication_id"`
	Ordinal      int    `json:"ordinal"`
	Day          string `json:"day"`
	Timestamp    int64  `json:"timestamp"`
}

// MoodPayloadV1 is the typed payload for mood check-in events
type MoodPayloadV1 struct {
	UserID    string `json:"user_id"`
	Mood      string `json:"mood"`
	Day       string `json:"day"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewMissionEvent creates a mission lifecycle event of the given type
func NewMissionEvent(t Type, userID, instanceID, missionID, slotID string, progress int, day string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: MissionEventPayloadV1{
			UserID:     userID,
			InstanceID: instanceID,
			MissionID:  missionID,
			SlotID:     slotID,
			Progress:   progress,
			Day:        day,
			Timestamp:  time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewXPEvent creates an XP awarded/retracted event
func NewXPEvent(t Type, userID string, amount int, source string, newXP int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: XPEventPayloadV1{
			UserID:    userID,
			Amount:    amount,
			Source:    source,
			NewXP:     newXP,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewLevelUpEvent creates a level up event
func NewLevelUpEvent(userID string, oldLevel, newLevel int, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{
			UserID:   userID,
			OldLevel: oldLevel,
			NewLevel: newLevel,
			Source:   source,
		},
		Metadata: nil,
	}
}

// NewStreakEvent creates a streak extended/reset event
func NewStreakEvent(t Type, userID string, currentStreak, longestStreak int, day string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: StreakPayloadV1{
			UserID:        userID,
			CurrentStreak: currentStreak,
			LongestStreak: longestStreak,
			Day:           day,
		},
		Metadata: nil,
	}
}

// NewAchievementEvent creates an achievement unlocked event
func NewAchievementEvent(userID, achievementID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    AchievementUnlocked,
		Payload: AchievementPayloadV1{
			UserID:        userID,
			AchievementID: achievementID,
			Timestamp:     time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewDoseEvent creates a dose taken/missed event
func NewDoseEvent(t Type, userID, medicationID string, ordinal int, day string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    t,
		Payload: DoseEventPayloadV1{
			UserID:       userID,
			MedicationID: medicationID,
			Ordinal:      ordinal,
			Day:          day,
			Timestamp:    time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewMoodEvent creates a mood recorded event
func NewMoodEvent(userID, mood, day string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    MoodRecorded,
		Payload: MoodPayloadV1{
			UserID:    userID,
			Mood:      mood,
			Day:       day,
			Timestamp: time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers execute synchronously; mutating services publish after their
	// own state change has been persisted.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
