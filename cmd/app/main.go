// Progress engine API server.
//
// Wires configuration, storage, the mission/medication/gamification services
// and the HTTP server together, then runs until interrupted.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Loretta-Health/Webapp-sub001/internal/bootstrap"
	"github.com/Loretta-Health/Webapp-sub001/internal/calendar"
	"github.com/Loretta-Health/Webapp-sub001/internal/catalog"
	"github.com/Loretta-Health/Webapp-sub001/internal/config"
	"github.com/Loretta-Health/Webapp-sub001/internal/database"
	"github.com/Loretta-Health/Webapp-sub001/internal/eventlog"
	"github.com/Loretta-Health/Webapp-sub001/internal/gamification"
	"github.com/Loretta-Health/Webapp-sub001/internal/medication"
	"github.com/Loretta-Health/Webapp-sub001/internal/mission"
	"github.com/Loretta-Health/Webapp-sub001/internal/progress"
	"github.com/Loretta-Health/Webapp-sub001/internal/server"
)

const (
	dbMaxConnections = 10
	dbMaxIdleTime    = 30 * time.Minute
	dbMaxLifetime    = time.Hour

	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	// An invalid catalog aborts startup; serving with a partial mission set
	// would silently break day materialization.
	cat, err := catalog.NewLoader().Load(cfg.MissionsPath, cfg.AchievementsPath)
	if err != nil {
		slog.Error(bootstrap.ErrMsgFailedLoadCatalog, "error", err)
		return err
	}
	slog.Info(bootstrap.LogMsgCatalogLoaded,
		"missions", len(cat.Missions()), "achievements", len(cat.Achievements()))

	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	eventBus, publisher, err := bootstrap.InitializeEventSystem()
	if err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	eventLogService := eventlog.NewService(repos.EventLog)
	if err := eventLogService.Subscribe(eventBus); err != nil {
		return err
	}
	go runEventLogCleanup(eventLogService)

	clock := calendar.NewSystemClock(cfg.Location())
	gamificationService := gamification.NewService(repos.Gamification, cat, publisher)
	missionService := mission.NewService(repos.Mission, cat, gamificationService, publisher)
	medicationService := medication.NewService(repos.Medication, gamificationService, publisher)
	progressService := progress.NewService(missionService, medicationService, gamificationService, clock)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, progressService)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		ResilientPublisher: publisher,
	})

	return nil
}

// runEventLogCleanup prunes old logged events once a day.
func runEventLogCleanup(svc eventlog.Service) {
	job := eventlog.NewCleanupJob(svc, eventlog.DefaultRetentionDays)
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := job.Process(context.Background()); err != nil {
			slog.Error("Event log cleanup run failed", "error", err)
		}
	}
}
