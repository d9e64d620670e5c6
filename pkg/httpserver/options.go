package httpserver

import (
	"log/slog"
	"time"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

func defaultConfig() *config {
	return &config{
		addr:            ":8080",
		shutdownTimeout: 5 * time.Second,
	}
}

// Option configures the server.
type Option func(*config)

func WithAddr(addr string) Option {
	return func(c *config) { c.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	return func(c *config) { c.readTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	return func(c *config) { c.idleTimeout = d }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) { c.shutdownTimeout = d }
}

func WithLogger(log *slog.Logger) Option {
	return func(c *config) { c.logger = log }
}
