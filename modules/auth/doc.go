// Package auth exposes cookie-session authentication over HTTP: register,
// login, current identity, session refresh and logout.
//
// Two guards gate the protected routes. The session guard resolves the
// HttpOnly sid cookie into an identity; the CSRF guard enforces the
// double-submit check on mutating requests. The session guard always runs
// first.
package auth
