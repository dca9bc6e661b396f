// Package health exposes liveness and readiness endpoints for the bot, so the
// container platform can tell a briefly idle pipeline from a wedged one.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DatabasePinger defines the interface for checking database connectivity.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// SchedulerStatus reports the state of the cron scheduler driving the
// detection and settlement runs.
type SchedulerStatus interface {
	IsRunning() bool
	NextRun() time.Time
}

// Status is the JSON body served by every endpoint. Checks and NextRun are
// only populated on /ready and /health respectively.
type Status struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Uptime  string            `json:"uptime,omitempty"`
	NextRun string            `json:"next_run,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Server is a lightweight HTTP server for health check endpoints.
type Server struct {
	serviceName string
	port        string
	startedAt   time.Time
	server      *http.Server
	logger      *logrus.Logger
	db          DatabasePinger
	sched       SchedulerStatus
	mu          sync.RWMutex
	ready       bool
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName string
	Port        string
	Logger      *logrus.Logger
	DB          DatabasePinger
	Scheduler   SchedulerStatus
}

// NewServer creates a new health check server.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == "" {
		port = os.Getenv("HEALTH_PORT")
	}
	if port == "" {
		port = "8080"
	}

	return &Server{
		serviceName: cfg.ServiceName,
		port:        port,
		startedAt:   time.Now(),
		logger:      cfg.Logger,
		db:          cfg.DB,
		sched:       cfg.Scheduler,
		ready:       false,
	}
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Start starts the health check server in the background.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/live", s.handleLive)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)

	s.server = &http.Server{
		Addr:         ":" + s.port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"port":    s.port,
				"service": s.serviceName,
			}).Info("Health check server starting")
		}

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("Health check server error")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully shuts down the health check server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	if s.logger != nil {
		s.logger.Info("Health check server shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// handleLive is the liveness probe: the process is up and serving.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.write(w, http.StatusOK, Status{
		Status:  "ok",
		Service: s.serviceName,
	})
}

// handleHealth reports the bot's own view of itself: uptime and when the
// next scheduled pipeline run fires.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := Status{
		Status:  "ok",
		Service: s.serviceName,
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
	}
	if s.sched != nil {
		if next := s.sched.NextRun(); !next.IsZero() {
			status.NextRun = next.UTC().Format(time.RFC3339)
		}
	}

	s.write(w, http.StatusOK, status)
}

// handleReady is the readiness probe: the scheduler must be running and the
// database reachable, otherwise the next pipeline run cannot succeed.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	healthy := true

	if s.IsReady() {
		checks["service"] = "ok"
	} else {
		healthy = false
		checks["service"] = "not_ready"
	}

	if s.sched != nil {
		if s.sched.IsRunning() {
			checks["scheduler"] = "ok"
		} else {
			healthy = false
			checks["scheduler"] = "stopped"
		}
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := s.db.Ping(ctx); err != nil {
			healthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	status := Status{Service: s.serviceName, Checks: checks}
	code := http.StatusOK
	if healthy {
		status.Status = "ok"
	} else {
		status.Status = "not_ready"
		code = http.StatusServiceUnavailable
	}

	s.write(w, code, status)
}

func (s *Server) write(w http.ResponseWriter, code int, status Status) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil && s.logger != nil {
		s.logger.WithError(err).Error("Failed to encode health response")
	}
}
