package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development debugging.
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*config)

type config struct {
	level  slog.Level
	format Format
	output io.Writer
}

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets output format.
// Panics for invalid formats to enforce fail-fast initialization.
func WithFormat(f Format) Option {
	return func(c *config) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets custom output destination, ignoring nil writers for safety.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// New creates a slog.Logger with the given options. Defaults to JSON output
// at info level on stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	switch cfg.format {
	case FormatText:
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	return slog.New(handler)
}

// NewDiscard returns a logger that drops all records. Useful as a default
// for services where logging is optional.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Config holds logger configuration loaded from the environment.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// NewFromConfig creates a logger from the provided Config.
// Unknown level strings fall back to info rather than failing startup.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	configOpts := []Option{WithLevel(level)}
	if cfg.Format != "" {
		configOpts = append(configOpts, WithFormat(Format(cfg.Format)))
	}
	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
