package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/seoforge/seoforge/internal/config"
	"github.com/seoforge/seoforge/internal/monitoring"
)

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	log             *slog.Logger
}

// NewServer assembles the middleware stack around the handler routes.
func NewServer(cfg *config.Config, h *Handler, metrics *monitoring.Metrics, log *slog.Logger) *Server {
	root := Chain(h.Routes(),
		RequestID,
		Logging(log),
		Metrics(metrics),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           root,
			ReadHeaderTimeout: 10 * time.Second,
			// Analyses can hold a request for the full fetch timeout
			WriteTimeout: cfg.FetchTimeout + 30*time.Second,
			IdleTimeout:  120 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             log,
	}
}

// ListenAndServe runs the server until it fails or is shut down.
func (s *Server) ListenAndServe() error {
	s.log.Info("server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
