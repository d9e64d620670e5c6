// Package csrf implements double-submit CSRF protection with HMAC-signed
// tokens.
//
// The session cookie is HttpOnly, so a forged cross-site request carries it
// automatically but cannot read it. A second, script-readable cookie holds a
// signed token the legitimate frontend copies into a request header; a
// forging site cannot read cross-origin cookies and so cannot reproduce the
// header. The middleware additionally verifies the token signature, so a
// page that can set headers but not read the real cookie still fails.
//
// Token format: base64url(raw).base64url(HMAC-SHA256(secret, raw))
//
// Tokens are not persisted. Any token the issuer could have signed remains
// valid until its carrying cookie is cleared.
package csrf
