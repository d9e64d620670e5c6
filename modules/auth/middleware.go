package auth

import (
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// RequireSession is the authentication guard. It resolves the session
// cookie into an active session and its owning user, attaching both to the
// request context. It runs before any protected handler and before the
// CSRF guard.
//
// Missing cookie, unresolvable session and deleted user all produce the
// same generic 401: the client cannot tell expired from revoked from
// malformed.
func (s *Service) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, err := s.cookies.Get(r, s.sessionCookieName)
		if err != nil || sid == "" {
			s.unauthenticated(w)
			return
		}

		sess, err := s.sessions.Resolve(r.Context(), sid)
		if err != nil {
			s.unauthenticated(w)
			return
		}

		user, err := s.users.GetUser(r.Context(), sess.UserID)
		if err != nil {
			// The account is gone; its sessions must not resolve.
			s.unauthenticated(w)
			return
		}

		ctx := WithIdentity(r.Context(), Identity{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		})
		ctx = WithSessionInfo(ctx, SessionInfo{
			SID:    sid,
			UserID: user.ID,
		})
		ctx = session.WithSession(ctx, sess)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCSRF is the CSRF guard for mutating protected operations. It only
// inspects the raw cookie/header pair and does not need the resolved
// identity, but is mounted after RequireSession so unauthenticated callers
// are rejected first.
func (s *Service) RequireCSRF(next http.Handler) http.Handler {
	return s.csrf.Protect(s.csrfCookieName, s.csrfHeaderName)(next)
}
