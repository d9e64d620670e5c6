package csrf

import "errors"

var (
	// ErrNoSecret indicates the issuer was constructed without a signing secret.
	ErrNoSecret = errors.New("csrf.no_secret")

	// ErrTokenGeneration indicates the random source failed.
	ErrTokenGeneration = errors.New("csrf.token_generation_failed")
)
