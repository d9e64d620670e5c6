package auth

import (
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// issueCookies writes the session and CSRF cookies after login, register or
// rotation.
//
// The session cookie is host-only (no Domain attribute): only the issuing
// API host receives it. The CSRF cookie is script-readable and, when a root
// domain is configured, scoped to it so a frontend on a sibling subdomain
// can read the token and echo it in the request header.
func (s *Service) issueCookies(w http.ResponseWriter, sid, csrfToken string) {
	s.cookies.Set(w, s.sessionCookieName, sid,
		cookie.WithHTTPOnly(true),
		cookie.WithMaxAge(int(s.sessions.TTL().Seconds())),
	)

	s.cookies.Set(w, s.csrfCookieName, csrfToken,
		cookie.WithHTTPOnly(false),
		cookie.WithDomain(s.cfg.CookieDomain),
	)
}

// clearCookies expires both cookies on logout, using the same path and
// domain scoping they were issued with.
func (s *Service) clearCookies(w http.ResponseWriter) {
	s.cookies.Delete(w, s.sessionCookieName)
	s.cookies.Delete(w, s.csrfCookieName,
		cookie.WithHTTPOnly(false),
		cookie.WithDomain(s.cfg.CookieDomain),
	)
}
