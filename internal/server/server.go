package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ChicagoDave/housingdash/pkg/report"
)

const shutdownTimeout = 5 * time.Second

// Server serves the dashboard API over the most recent report.
type Server struct {
	builder *report.Builder
	logger  *slog.Logger
	metrics *Metrics

	mu      sync.RWMutex
	current *report.Report
}

// New builds the initial report and returns a server for it. A nil logger
// discards output.
func New(builder *report.Builder, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		builder: builder,
		logger:  logger,
		metrics: NewMetrics(),
	}
	if _, err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// Report returns the report currently being served.
func (s *Server) Report() *report.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Refresh generates a new report and swaps it in. Segments are identical
// across refreshes; history noise, projects, demand and funding are redrawn.
// On failure the previous report stays in place.
func (s *Server) Refresh() (*report.Report, error) {
	start := time.Now()
	r, err := s.builder.Build(nil)
	s.metrics.Build(time.Since(start), err)
	if err != nil {
		s.logger.Error("report generation failed", "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.current = r
	s.mu.Unlock()

	s.metrics.Current(len(r.Providers), len(r.Derived.Projects))
	s.logger.Info("report generated",
		"providers", len(r.Providers),
		"projects", len(r.Derived.Projects),
		"warnings", len(r.Validation.Warnings),
		"elapsed", time.Since(start))
	return r, nil
}

// Handler returns the HTTP router.
func (s *Server) Handler() http.Handler {
	r := s.router()

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/providers", s.handleProviders)
		r.Get("/providers/{name}", s.handleProvider)
		r.Get("/segments", s.handleSegments)
		r.Get("/history", s.handleHistory)
		r.Get("/projects", s.handleProjects)
		r.Get("/demand", s.handleDemand)
		r.Get("/funding", s.handleFunding)
		r.Get("/top", s.handleTop)
		r.Get("/indicators", s.handleIndicators)
		r.Get("/validation", s.handleValidation)
		r.Post("/refresh", s.handleRefresh)
	})
	return r
}

// router returns a chi router carrying the server's middleware stack. The
// metrics middleware sits outside Recoverer so recovered panics are counted
// as 500s.
func (s *Server) router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.metrics.Middleware)
	r.Use(middleware.Recoverer)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}
