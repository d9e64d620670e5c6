package cookie

import (
	"errors"
	"net/http"
	"time"
)

// Manager writes and reads cookies with a consistent set of default
// attributes. Defaults are applied to every cookie and can be overridden
// per call with functional options.
type Manager struct {
	defaults Options
}

// New returns a Manager with secure-by-default attributes: path "/",
// HttpOnly and SameSite=Lax.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Set writes a cookie to the response.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// Get reads a cookie value from the request.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete expires a cookie immediately. The path and domain must match the
// attributes the cookie was issued with, so per-call options are honored.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}
