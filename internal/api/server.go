// Package api exposes the HTTP interface for the identity engine.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/uaforge/uaforge/internal/engine"
	"github.com/uaforge/uaforge/internal/headers"
	"github.com/uaforge/uaforge/internal/persona"
)

// Server wires HTTP handlers to the identity engine.
type Server struct {
	router chi.Router
	engine *engine.Engine
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(eng *engine.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{engine: eng, logger: logger}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(30 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/identity", s.getIdentity)
		r.Get("/headers", s.getHeaders)
		r.Get("/crawler/{kind}", s.getCrawlerHeaders)
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

func (s *Server) getIdentity(w http.ResponseWriter, _ *http.Request) {
	ua, err := s.engine.Identity()
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user_agent": ua}, s.logger)
}

func (s *Server) getHeaders(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if target == "" {
		writeError(w, http.StatusBadRequest, "missing url query parameter", s.logger)
		return
	}
	hdrs, err := s.engine.Headers(target)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, headersResponse{URL: target, Headers: hdrs}, s.logger)
}

func (s *Server) getCrawlerHeaders(w http.ResponseWriter, r *http.Request) {
	kind, err := headers.ParseCrawlerKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	hdrs, err := s.engine.CrawlerHeaders(kind)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, crawlerResponse{Kind: string(kind), Headers: hdrs}, s.logger)
}

// writeEngineError maps the engine error taxonomy onto HTTP statuses.
func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, persona.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error(), s.logger)
	case errors.Is(err, persona.ErrUnknownCrawler):
		writeError(w, http.StatusNotFound, err.Error(), s.logger)
	case errors.Is(err, persona.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, err.Error(), s.logger)
	default:
		s.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error", s.logger)
	}
}

type headersResponse struct {
	URL     string             `json:"url"`
	Headers persona.HeaderList `json:"headers"`
}

type crawlerResponse struct {
	Kind    string             `json:"kind"`
	Headers persona.HeaderList `json:"headers"`
}

type requestIDKey struct{}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func loggingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.status),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			)
		})
	}
}

func recoverMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered", zap.Any("error", rec))
					writeError(w, http.StatusInternalServerError, "internal server error", logger)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

func timeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, "request timed out")
	}
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("write JSON failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string, logger *zap.Logger) {
	writeJSON(w, status, map[string]string{"error": msg}, logger)
}
