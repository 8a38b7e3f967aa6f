package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/metrics"
)

// InitializeEventSystem creates and configures the event bus and resilient
// publisher, and subscribes the metrics collector so every domain event is
// reflected in Prometheus counters.
// Returns the event bus, resilient publisher, and any error encountered.
func InitializeEventSystem() (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	// Ensure dead-letter directory exists
	if err := os.MkdirAll(filepath.Dir(event.DefaultDeadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	resilientPublisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:     event.DefaultMaxRetries,
		RetryDelay:     event.DefaultRetryDelay,
		DeadLetterPath: event.DefaultDeadLetterPath,
	})

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(eventBus); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorInit)

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", event.DefaultMaxRetries,
		"retry_delay", event.DefaultRetryDelay,
		"deadletter_path", event.DefaultDeadLetterPath)

	return eventBus, resilientPublisher, nil
}
