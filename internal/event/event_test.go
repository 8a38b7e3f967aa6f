package event

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(XPAwarded, func(ctx context.Context, event Event) error {
		if event.Type != XPAwarded {
			t.Errorf("Expected event type %s, got %s", XPAwarded, event.Type)
		}
		payload, ok := event.Payload.(XPEventPayloadV1)
		if !ok {
			t.Fatalf("Expected XPEventPayloadV1 payload, got %T", event.Payload)
		}
		if payload.Amount != 50 {
			t.Errorf("Expected amount 50, got %d", payload.Amount)
		}
		if payload.UserID != "user123" {
			t.Errorf("Expected user_id user123, got %s", payload.UserID)
		}
		handled = true
		return nil
	})

	err := bus.Publish(context.Background(), NewXPEvent(XPAwarded, "user123", 50, "mission:hydrate", 150))

	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if !handled {
		t.Error("Handler was not called")
	}
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0

	handler := func(ctx context.Context, event Event) error {
		count++
		return nil
	}

	bus.Subscribe(MissionCompleted, handler)
	bus.Subscribe(MissionCompleted, handler)

	err := bus.Publish(context.Background(), NewMissionEvent(MissionCompleted, "user123", "inst-1", "hydrate", "slot-1", 8, "2026-03-02"))
	if err != nil {
		t.Errorf("Publish returned error: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected 2 handlers to be called, got %d", count)
	}
}

func TestMemoryBus_PublishNoSubscribers(t *testing.T) {
	bus := NewMemoryBus()

	err := bus.Publish(context.Background(), NewMoodEvent("user123", "good", "2026-03-02"))
	if err != nil {
		t.Errorf("Publish with no subscribers should not error, got: %v", err)
	}
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()

	bus.Subscribe(DoseTaken, func(ctx context.Context, event Event) error {
		return errors.New("handler error")
	})

	err := bus.Publish(context.Background(), NewDoseEvent(DoseTaken, "user123", "med-1", 0, "2026-03-02"))
	if err == nil {
		t.Error("Expected error from Publish, got nil")
	}
}

func TestMemoryBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewMemoryBus()
	secondCalled := false

	bus.Subscribe(StreakExtended, func(ctx context.Context, event Event) error {
		return errors.New("first handler error")
	})
	bus.Subscribe(StreakExtended, func(ctx context.Context, event Event) error {
		secondCalled = true
		return nil
	})

	err := bus.Publish(context.Background(), NewStreakEvent(StreakExtended, "user123", 5, 12, "2026-03-02"))
	if err == nil {
		t.Error("Expected aggregated error from Publish, got nil")
	}
	if !secondCalled {
		t.Error("Second handler should run even when the first fails")
	}
}

func TestEventConstructors_Versioned(t *testing.T) {
	events := []Event{
		NewMissionEvent(MissionStepLogged, "u", "i", "m", "s", 1, "2026-03-02"),
		NewXPEvent(XPRetracted, "u", -50, "undo:hydrate", 100),
		NewLevelUpEvent("u", 1, 2, "mission:hydrate"),
		NewStreakEvent(StreakReset, "u", 0, 12, "2026-03-02"),
		NewAchievementEvent("u", "first_mission"),
		NewDoseEvent(DoseMissed, "u", "med-1", 1, "2026-03-02"),
		NewMoodEvent("u", "low", "2026-03-02"),
	}

	for _, e := range events {
		if e.Version != EventSchemaVersion {
			t.Errorf("Event %s has version %q, expected %q", e.Type, e.Version, EventSchemaVersion)
		}
		if e.Payload == nil {
			t.Errorf("Event %s has nil payload", e.Type)
		}
	}
}
