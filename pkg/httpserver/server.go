package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
)

// Server wraps http.Server with graceful shutdown on context cancellation
// or SIGINT/SIGTERM.
type Server struct {
	cfg  *config
	srv  *http.Server
	mu   sync.Mutex
	once sync.Once
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewDiscard()
	}
	return &Server{cfg: cfg}
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already running"))
	}

	cfg := s.cfg
	srv := &http.Server{
		Addr:         cfg.addr,
		ReadTimeout:  cfg.readTimeout,
		WriteTimeout: cfg.writeTimeout,
		IdleTimeout:  cfg.idleTimeout,
		Handler:      handler,
	}
	s.srv = srv
	s.mu.Unlock()

	cfg.logger.Info("http server starting", slog.String("addr", srv.Addr))

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		_ = s.Shutdown(context.Background())
		runErr = <-errCh
	case sig := <-stop:
		cfg.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		_ = s.Shutdown(context.Background())
		runErr = <-errCh
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}

	cfg.logger.Info("http server stopped")
	return nil
}

// Shutdown stops the server gracefully. Safe for repeated calls.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()

		if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
			err = errors.Join(ErrShutdown, shutdownErr)
		}
	})
	return err
}
