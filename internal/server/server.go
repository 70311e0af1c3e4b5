// Package server exposes the scrubber as an HTTP service: POST /scrub takes
// markdown and returns the scrubbed markup, plus health and metrics
// endpoints.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/prscrub/internal/config"
	serrors "git.home.luguber.info/inful/prscrub/internal/errors"
	"git.home.luguber.info/inful/prscrub/internal/metrics"
	"git.home.luguber.info/inful/prscrub/internal/scrub"
)

// Server wraps the HTTP service around a Scrubber.
type Server struct {
	httpServer   *http.Server
	scrubber     *scrub.Scrubber
	logger       *slog.Logger
	adapter      *serrors.HTTPErrorAdapter
	maxBodyBytes int64
}

// New constructs a Server. The prometheus registry serves GET /metrics; pass
// the registry the Scrubber's recorder was registered on.
func New(cfg config.ServerConfig, scrubber *scrub.Scrubber, reg *prom.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		scrubber:     scrubber,
		logger:       logger,
		adapter:      serrors.NewHTTPErrorAdapter(logger),
		maxBodyBytes: cfg.MaxBodyBytes,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/scrub", s.handleScrub)
	mux.HandleFunc("/healthz", s.handleHealthz)
	if reg != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(reg))
	}

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           Chain(logger, s.adapter)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run starts the server and blocks until the context is canceled or the
// listener fails. Shutdown drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return serrors.Wrap(err, serrors.CategoryRuntime, serrors.SeverityFatal, "HTTP server failed")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("Shutting down HTTP server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return serrors.Wrap(err, serrors.CategoryRuntime, serrors.SeverityError, "HTTP server shutdown failed")
	}
	return nil
}
