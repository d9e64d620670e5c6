package auth

// Config holds the HTTP-facing cookie policy for the auth module.
type Config struct {
	// CookieDomain scopes the CSRF cookie to a shared root domain so a
	// frontend on a sibling subdomain can read it. Empty means host-only,
	// like the session cookie always is.
	CookieDomain string `env:"COOKIE_DOMAIN" envDefault:""`

	// SecureCookies marks both cookies secure-transport-only. Disable only
	// for plain-HTTP local development.
	SecureCookies bool `env:"COOKIE_SECURE" envDefault:"true"`
}
