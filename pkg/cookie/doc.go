// Package cookie provides a small cookie manager with secure defaults and
// per-call overrides via functional options.
//
// The manager carries a set of default attributes (path "/", HttpOnly,
// SameSite=Lax) so callers only spell out what differs for a particular
// cookie, such as dropping HttpOnly for a script-readable token or scoping
// the Domain to a shared root.
package cookie
