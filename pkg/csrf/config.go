package csrf

// Config holds CSRF issuer configuration.
type Config struct {
	// Secret keys the HMAC over token payloads. Required: without it any
	// party could mint valid tokens.
	Secret string `env:"CSRF_SECRET,required"`

	// CookieName is the script-readable cookie carrying the token.
	CookieName string `env:"CSRF_COOKIE_NAME" envDefault:"csrf"`

	// HeaderName is the request header the frontend echoes the cookie into.
	HeaderName string `env:"CSRF_HEADER_NAME" envDefault:"x-csrf"`
}

// NewFromConfig creates an Issuer from the provided Config.
func NewFromConfig(cfg Config) (*Issuer, error) {
	return NewIssuer(cfg.Secret)
}
