// Package http exposes the learning engine over a small REST API.
// The API mirrors the engine's operations one-to-one: track listing,
// checkpoint assessment, paid track creation, profile and reset.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/courseit/courseit-core/internal/application/command"
	"github.com/courseit/courseit-core/internal/application/query"
	"github.com/courseit/courseit-core/internal/application/saga"
)

// ══════════════════════════════════════════════════════════════════════════════
// SERVER
// ══════════════════════════════════════════════════════════════════════════════

// Config contains HTTP server configuration.
type Config struct {
	// Host to bind to.
	Host string

	// Port to listen on.
	Port int

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Logger for structured logging.
	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults.
// The write timeout leaves room for one remote assessment call (8s fixed
// timeout) plus retries.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}
}

// Handlers bundles the application-layer entry points the API serves.
type Handlers struct {
	Tracks        *query.GetTracksHandler
	Profile       *query.GetProfileHandler
	CompleteStage *command.CompleteStageHandler
	ClearData     *command.ClearDataHandler
	TrackCreation *saga.TrackCreationSaga
}

// Server is the REST API server.
type Server struct {
	config   Config
	handlers Handlers
	logger   *slog.Logger
	server   *http.Server
}

// NewServer creates a new Server.
func NewServer(config Config, handlers Handlers) *Server {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Port == 0 {
		config.Port = DefaultConfig().Port
	}

	s := &Server{
		config:   config,
		handlers: handlers,
		logger:   config.Logger,
	}

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      s.Routes(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}
	return s
}

// Routes builds the request router.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/tracks", s.handleListTracks)
	mux.HandleFunc("GET /api/tracks/{id}", s.handleGetTrack)
	mux.HandleFunc("POST /api/tracks", s.handleCreateTrack)
	mux.HandleFunc("POST /api/tracks/{id}/checkpoints/{checkpointId}/assess", s.handleAssess)
	mux.HandleFunc("GET /api/profile", s.handleProfile)
	mux.HandleFunc("POST /api/reset", s.handleReset)

	return s.withRequestID(s.withLogging(mux))
}

// Start runs the server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MIDDLEWARE
// ══════════════════════════════════════════════════════════════════════════════

type ctxKeyRequestID struct{}

// withRequestID assigns every request a correlation ID, honoring an
// X-Request-ID header from the caller.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// withLogging logs each request with its duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"request_id", requestIDFrom(r.Context()))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKeyRequestID{}).(string); ok {
		return id
	}
	return ""
}
