package session

import "time"

// DefaultTTL is the session lifetime when none is configured (7 days).
const DefaultTTL = 7 * 24 * time.Hour

// DefaultCookieName is the HttpOnly cookie carrying the raw session identifier.
const DefaultCookieName = "sid"

// Config holds session manager configuration.
type Config struct {
	// Secret keys the one-way hash of session identifiers. Required:
	// stored rows must not be convertible back into usable cookies.
	Secret string `env:"SESSION_SECRET,required"`

	// TTL is the fixed-window session lifetime. Resolution never extends it.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	// CookieName is the name of the session identifier cookie.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
}

// NewFromConfig creates a Manager from the provided Config.
func NewFromConfig(cfg Config, store Store, opts ...Option) (*Manager, error) {
	configOpts := []Option{WithTTL(cfg.TTL)}
	configOpts = append(configOpts, opts...)

	return New(store, cfg.Secret, configOpts...)
}
