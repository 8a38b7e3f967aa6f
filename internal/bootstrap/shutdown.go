package bootstrap

import (
	"context"
	"log/slog"

	"github.com/Loretta-Health/Webapp-sub001/internal/event"
	"github.com/Loretta-Health/Webapp-sub001/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in order:
// 1. HTTP server (stop accepting new requests)
// 2. Event publisher (wait for in-flight retry loops to drain)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	components.ResilientPublisher.Wait()

	slog.Info(LogMsgServerStopped)
}
