package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Loretta-Health/Webapp-sub001/internal/database"
	"github.com/Loretta-Health/Webapp-sub001/internal/handler"
	"github.com/Loretta-Health/Webapp-sub001/internal/logger"
	"github.com/Loretta-Health/Webapp-sub001/internal/metrics"
	"github.com/Loretta-Health/Webapp-sub001/internal/progress"
)

type Server struct {
	httpServer      *http.Server
	dbPool          database.Pool
	progressService progress.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, progressService progress.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Aggregate dashboard snapshot
		r.Get("/progress/snapshot", handler.HandleGetSnapshot(progressService))

		// Mission routes
		r.Get("/missions", handler.HandleListMissions(progressService)) // handle /missions exactly
		r.Route("/missions", func(r chi.Router) {
			r.Get("/", handler.HandleListMissions(progressService))
			r.Post("/alternative/activate", handler.HandleActivateAlternative(progressService))
			r.Post("/step", handler.HandleLogMissionStep(progressService))
			r.Post("/step/undo", handler.HandleUndoMissionStep(progressService))
			r.Post("/complete", handler.HandleCompleteMission(progressService))
			r.Post("/deactivate", handler.HandleDeactivateMission(progressService))
		})

		// Medication routes
		r.Get("/medications", handler.HandleListMedications(progressService))
		r.Post("/medications", handler.HandleAddMedication(progressService))
		r.Route("/medications", func(r chi.Router) {
			r.Get("/", handler.HandleListMedications(progressService))
			r.Post("/", handler.HandleAddMedication(progressService))
			r.Put("/update", handler.HandleUpdateMedication(progressService))
			r.Delete("/remove", handler.HandleRemoveMedication(progressService))
			r.Post("/dose", handler.HandleLogDose(progressService))
			r.Post("/dose/missed", handler.HandleLogMissedDose(progressService))
			r.Get("/adherence", handler.HandleGetAdherence(progressService))
		})

		// Gamification routes
		r.Get("/gamification", handler.HandleGetGamificationState(progressService))
		r.Route("/gamification", func(r chi.Router) {
			r.Get("/", handler.HandleGetGamificationState(progressService))
			r.Post("/checkin", handler.HandleCheckIn(progressService))
			r.Post("/mood", handler.HandleRecordMood(progressService))
			r.Get("/xp-history", handler.HandleGetXPHistory(progressService))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:          dbPool,
		progressService: progressService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
