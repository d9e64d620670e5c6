package auth

import "errors"

var (
	// ErrUserNotFound indicates no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists indicates the email is already registered.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is the single error for every authentication
	// failure: unknown email and wrong password are indistinguishable to
	// prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
