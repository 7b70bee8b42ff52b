package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"toga/internal/domain"
	"toga/internal/logging"
	"toga/internal/metrics"
	"toga/internal/ports"
	"toga/internal/services"
)

// AttemptReader is the read side of the attempt journal
type AttemptReader interface {
	List(ctx context.Context, filter ports.AttemptFilter) ([]domain.Attempt, error)
	Summary(ctx context.Context) (services.AttemptSummary, error)
}

// StatusOptions configures the HTTP status server
type StatusOptions struct {
	Address  string
	Attempts AttemptReader    // nil disables the /attempts routes
	Metrics  *metrics.Metrics // nil disables /metrics
	Ready    func() bool      // nil means always ready
}

// StatusServer exposes health, metrics and the attempt journal over HTTP
type StatusServer struct {
	attempts AttemptReader
	ready    func() bool
	srv      *http.Server
}

// attemptView is the JSON shape of a journaled attempt
type attemptView struct {
	CreatedAt  time.Time `json:"createdAt"`
	DurationMS int64     `json:"durationMs"`
	ErrorKind  string    `json:"errorKind,omitempty"`
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	Kind       string    `json:"kind"`
	Outcome    string    `json:"outcome"`
}

// NewStatusServer creates the status server and its routes
func NewStatusServer(opts StatusOptions) *StatusServer {
	s := &StatusServer{
		attempts: opts.Attempts,
		ready:    opts.Ready,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, requestLogger)

	r.Get("/healthz", s.health)
	r.Get("/readyz", s.readiness)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	if opts.Attempts != nil {
		r.Route("/attempts", func(r chi.Router) {
			r.Get("/", s.listAttempts)
			r.Get("/summary", s.attemptSummary)
			r.Get("/{identifier}", s.listAttempts)
		})
	}

	s.srv = &http.Server{
		Addr:              opts.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the router, mainly for tests
func (s *StatusServer) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *StatusServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	logging.Logger.Info("Starting status server", "address", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("status server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown status server: %w", err)
	}
	logging.Logger.Info("Status server stopped")
	return nil
}

func (s *StatusServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *StatusServer) readiness(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil && !s.ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (s *StatusServer) listAttempts(w http.ResponseWriter, r *http.Request) {
	filter := ports.AttemptFilter{
		Identifier: chi.URLParam(r, "identifier"),
		Kind:       domain.AttemptKind(r.URL.Query().Get("kind")),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}

	attempts, err := s.attempts.List(r.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		logging.Logger.Error("Failed to list attempts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to list attempts"})
		return
	}

	views := make([]attemptView, 0, len(attempts))
	for _, a := range attempts {
		views = append(views, attemptView{
			CreatedAt:  a.CreatedAt,
			DurationMS: a.Duration.Milliseconds(),
			ErrorKind:  string(a.ErrorKind),
			ID:         a.ID,
			Identifier: a.Identifier,
			Kind:       string(a.Kind),
			Outcome:    string(a.Outcome),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"attempts": views})
}

func (s *StatusServer) attemptSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.attempts.Summary(r.Context())
	if err != nil {
		logging.Logger.Error("Failed to summarize attempts", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "failed to summarize attempts"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"byOutcome": summary.ByOutcome,
		"total":     summary.Total,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs every request through the application logger
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
