package auth

import (
	"log/slog"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
	"github.com/dmitrymomot/sessionkit/pkg/csrf"
	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/session"

	pwd "github.com/dmitrymomot/sessionkit/pkg/auth"
)

// Service wires the credential service, session manager and CSRF issuer
// into the /auth HTTP surface.
type Service struct {
	cfg      Config
	users    *pwd.Service
	sessions *session.Manager
	csrf     *csrf.Issuer
	cookies  *cookie.Manager
	log      *slog.Logger

	sessionCookieName string
	csrfCookieName    string
	csrfHeaderName    string
}

// Option configures the auth module.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCookieNames overrides the session and CSRF cookie names.
func WithCookieNames(sessionCookie, csrfCookie string) Option {
	return func(s *Service) {
		if sessionCookie != "" {
			s.sessionCookieName = sessionCookie
		}
		if csrfCookie != "" {
			s.csrfCookieName = csrfCookie
		}
	}
}

// WithCSRFHeaderName overrides the header the frontend echoes the CSRF
// cookie into.
func WithCSRFHeaderName(header string) Option {
	return func(s *Service) {
		if header != "" {
			s.csrfHeaderName = header
		}
	}
}

// NewService creates the auth HTTP module.
func NewService(
	cfg Config,
	users *pwd.Service,
	sessions *session.Manager,
	issuer *csrf.Issuer,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:               cfg,
		users:             users,
		sessions:          sessions,
		csrf:              issuer,
		cookies:           cookie.New(cookie.WithSecure(cfg.SecureCookies)),
		log:               logger.NewDiscard(),
		sessionCookieName: session.DefaultCookieName,
		csrfCookieName:    csrf.DefaultCookieName,
		csrfHeaderName:    csrf.DefaultHeaderName,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
