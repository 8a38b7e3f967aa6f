package event

import "time"

// EventSchemaVersion is the current version of the event schema
const EventSchemaVersion = "1.0"

// Log message formats
const (
	LogMsgHandlerErrorFormat = "%d handler error(s) for event %s: %v"
)

// Default resilient publisher settings
const (
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 2 * time.Second
	DefaultDeadLetterPath = "logs/events.deadletter.jsonl"
)
