package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router builds the /auth route tree. Guard ordering is explicit: the
// session guard wraps every protected route, and the CSRF guard wraps only
// the mutating ones, always inside the session guard.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)

	r.Group(func(protected chi.Router) {
		protected.Use(s.RequireSession)

		protected.Get("/me", s.handleMe)

		protected.Group(func(mutating chi.Router) {
			mutating.Use(s.RequireCSRF)

			mutating.Post("/refresh", s.handleRefresh)
			mutating.Post("/logout", s.handleLogout)
		})
	})

	return r
}
