package http

import (
	"context"
	"errors"
	nethttp "net/http"

	"github.com/yungbote/storygap-backend/internal/config"
	"github.com/yungbote/storygap-backend/internal/platform/logger"
)

type Server struct {
	srv             *nethttp.Server
	log             *logger.Logger
	shutdownTimeout config.Duration
}

func NewServer(cfg config.HTTPConfig, log *logger.Logger, h nethttp.Handler) *Server {
	srv := &nethttp.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.IdleTimeout.Duration,
		// Synchronous builds can take several model round trips.
		WriteTimeout: 0,
	}
	return &Server{srv: srv, log: log, shutdownTimeout: cfg.ShutdownTimeout}
}

func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", "addr", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout.Duration)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("HTTP server shutdown incomplete", "error", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return err
	}
}
