package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"facultyroom/internal/booking"
	"facultyroom/internal/config"
	"facultyroom/internal/metrics"
	"facultyroom/internal/timetable"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Server exposes the booking lifecycle over HTTP.
type Server struct {
	engine     *booking.Engine
	timetables *timetable.Store
	auth       *Auth
	limiter    *rateLimiter
	server     *http.Server
	handler    http.Handler
	logger     zerolog.Logger
}

func NewServer(cfg *config.Config, engine *booking.Engine, timetables *timetable.Store, auth *Auth, logger *zerolog.Logger) *Server {
	var componentLogger zerolog.Logger
	if logger != nil {
		componentLogger = logger.With().Str("component", "http").Logger()
	}

	s := &Server{
		engine:     engine,
		timetables: timetables,
		auth:       auth,
		limiter:    newRateLimiter(cfg.RateLimit),
		logger:     componentLogger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/auth/", s.handleAuth)
	mux.HandleFunc("/api/v1/timetable", s.handleTimetable)
	mux.HandleFunc("/api/v1/week", s.handleWeek)
	mux.HandleFunc("/api/v1/bookings", s.handleBookings)
	mux.HandleFunc("/api/v1/bookings/pending-slots", s.handlePendingSlots)
	mux.HandleFunc("/api/v1/teacher/bookings", s.handleTeacherBookings)
	mux.HandleFunc("/api/v1/teacher/bookings/", s.handleTeacherDecision)
	mux.HandleFunc("/api/v1/teacher/export", s.handleExport)
	mux.HandleFunc("/api/v1/developer/reset-week", s.handleResetWeek)
	mux.HandleFunc("/api/v1/developer/timetable", s.handleDeveloperTimetable)
	mux.HandleFunc("/healthz", s.handleHealthz)

	s.handler = s.loggingMiddleware(s.rateLimitMiddleware(mux))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return s
}

// Handler returns the fully wired handler chain. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		metrics.IncHTTP(r.URL.Path)
		s.logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(r) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]any{"success": false, "message": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
