package event

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Loretta-Health/Webapp-sub001/internal/testing/leaktest"
)

// mockBus is a test double for event.Bus
type mockBus struct {
	mu         sync.Mutex
	calls      []Event
	shouldFail func(attempt int) bool
}

func (m *mockBus) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, event)
	callCount := len(m.calls)
	m.mu.Unlock()

	if m.shouldFail != nil && m.shouldFail(callCount) {
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockBus) Subscribe(eventType Type, handler Handler) {
	// Not used in these tests
}

func (m *mockBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockBus) GetCalls() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event{}, m.calls...)
}

func newTestPublisher(bus Bus, deadLetterPath string) *ResilientPublisher {
	return NewResilientPublisher(bus, ResilientConfig{
		MaxRetries:     3,
		RetryDelay:     time.Millisecond,
		DeadLetterPath: deadLetterPath,
	})
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{}

	rp := newTestPublisher(bus, tmpFile)

	rp.PublishWithRetry(context.Background(), NewXPEvent(XPAwarded, "user123", 50, "mission:hydrate", 150))
	rp.Wait()

	assert.Equal(t, 1, bus.CallCount(), "Event should be published once")
	assert.Equal(t, XPAwarded, bus.GetCalls()[0].Type)

	// No dead-letter entry
	content, _ := os.ReadFile(tmpFile)
	assert.Empty(t, content, "No dead-letter entries expected")
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	// Bus fails on first attempt, succeeds on second
	bus := &mockBus{
		shouldFail: func(attempt int) bool {
			return attempt == 1
		},
	}

	rp := newTestPublisher(bus, tmpFile)

	rp.PublishWithRetry(context.Background(), NewDoseEvent(DoseTaken, "user123", "med-1", 0, "2026-03-02"))
	rp.Wait()

	assert.Equal(t, 2, bus.CallCount(), "Should attempt twice: initial + retry")

	content, _ := os.ReadFile(tmpFile)
	assert.Empty(t, content, "No dead-letter entries for successful retry")
}

func TestResilientPublisher_RetryExhaustion(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	// Bus always fails
	bus := &mockBus{
		shouldFail: func(attempt int) bool {
			return true
		},
	}

	rp := newTestPublisher(bus, tmpFile)

	rp.PublishWithRetry(context.Background(), NewMissionEvent(MissionCompleted, "user123", "inst-1", "hydrate", "slot-1", 8, "2026-03-02"))
	rp.Wait()

	// Initial attempt + 3 retries
	assert.Equal(t, 4, bus.CallCount(), "Should exhaust all retries")

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	require.NotEmpty(t, content, "Dead-letter file should have entry")

	var dlEntry struct {
		Timestamp time.Time `json:"timestamp"`
		Event     struct {
			Version string                 `json:"version"`
			Type    string                 `json:"type"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"event"`
	}
	err = json.Unmarshal(content, &dlEntry)
	require.NoError(t, err, "Dead-letter entry should be valid JSON")

	assert.Equal(t, string(MissionCompleted), dlEntry.Event.Type)
	assert.Equal(t, EventSchemaVersion, dlEntry.Event.Version)
	assert.Equal(t, "hydrate", dlEntry.Event.Payload["mission_id"])
	assert.False(t, dlEntry.Timestamp.IsZero())
}

func TestResilientPublisher_DeadLetterAppends(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	bus := &mockBus{
		shouldFail: func(attempt int) bool {
			return true
		},
	}

	rp := newTestPublisher(bus, tmpFile)

	rp.PublishWithRetry(context.Background(), NewMoodEvent("user123", "low", "2026-03-02"))
	rp.PublishWithRetry(context.Background(), NewMoodEvent("user123", "good", "2026-03-03"))
	rp.Wait()

	f, err := os.Open(tmpFile)
	require.NoError(t, err)
	defer f.Close()

	dec := json.NewDecoder(f)
	entries := 0
	for dec.More() {
		var entry map[string]interface{}
		require.NoError(t, dec.Decode(&entry))
		entries++
	}
	assert.Equal(t, 2, entries, "Each failed event gets its own dead-letter line")
}

func TestResilientPublisher_NoGoroutineLeak(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	// Every publish spawns a retry goroutine; Wait must reap them all
	leaktest.CheckNoGoroutineLeak(t, func() {
		bus := &mockBus{
			shouldFail: func(attempt int) bool {
				return attempt%2 == 1
			},
		}
		rp := newTestPublisher(bus, tmpFile)

		for i := 0; i < 10; i++ {
			rp.PublishWithRetry(context.Background(), NewXPEvent(XPAwarded, "user123", 10, "mission:hydrate", 100))
		}
		rp.Wait()
	})
}

func TestResilientPublisher_SubscribeDelegates(t *testing.T) {
	bus := NewMemoryBus()
	rp := newTestPublisher(bus, t.TempDir()+"/deadletter.jsonl")

	called := false
	rp.Subscribe(MoodRecorded, func(ctx context.Context, event Event) error {
		called = true
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewMoodEvent("user123", "okay", "2026-03-02")))
	assert.True(t, called, "Handler subscribed through the publisher should receive bus events")
}
