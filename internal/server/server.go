// Package server provides the HTTP REST API for the internship board.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/internship-board/internal/config"
	"github.com/jonathan/internship-board/internal/ranking"
	"github.com/jonathan/internship-board/internal/server/ratelimit"
	"github.com/jonathan/internship-board/internal/storage"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 30 * time.Second
	healthTimeout   = 2 * time.Second
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       storage.Store
	ranker      *ranking.Ranker
	userService *UserService
	rateLimiter *ratelimit.Limiter
	metrics     *Metrics
	logger      *zap.Logger
}

// New creates a new server instance backed by store.
// The caller owns store and closes it after Start returns.
func New(cfg *config.Config, store storage.Store, logger *zap.Logger) (*Server, error) {
	passwordConfig, err := cfg.PasswordHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}

	s := &Server{
		store:       store,
		userService: NewUserService(store, passwordConfig),
		metrics:     NewMetrics(),
		logger:      logger,
	}
	s.ranker = ranking.NewRanker(store, store, ranking.WithObserver(s.metrics.observeRanking))
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.Config{
		Enabled:           cfg.RateLimit.Enabled,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		IdleTTL:           cfg.RateLimit.IdleTTL,
		ExemptPaths:       ratelimit.DefaultExemptPaths,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	// Internships and matching
	mux.HandleFunc("GET /internships", s.handleListInternships)
	mux.HandleFunc("GET /internships/{id}", s.handleGetInternship)
	mux.HandleFunc("GET /resumes/{id}/matches", s.handleResumeMatches)

	// Resumes
	mux.HandleFunc("POST /resumes", s.handleCreateResume)
	mux.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	mux.HandleFunc("PATCH /resumes/{id}/analysis", s.handleUpdateResumeAnalysis)
	mux.HandleFunc("GET /users/{id}/resumes", s.handleListUserResumes)

	// Users
	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)

	// Applications
	mux.HandleFunc("POST /applications", s.handleCreateApplication)
	mux.HandleFunc("GET /applications/{id}", s.handleGetApplication)
	mux.HandleFunc("PATCH /applications/{id}/status", s.handleUpdateApplicationStatus)
	mux.HandleFunc("GET /users/{id}/applications", s.handleListUserApplications)

	// Resume analyses
	mux.HandleFunc("POST /resume-analyses", s.handleCreateResumeAnalysis)
	mux.HandleFunc("GET /resumes/{id}/analysis", s.handleGetResumeAnalysis)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withMetrics(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Metrics returns the server's metric collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start serves requests until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources without serving. Used when Start is never called.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// handleHealth reports whether the store is reachable
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps err to a status code. Internal errors are logged and not echoed to the client.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid request body"}
	}
	return nil
}
