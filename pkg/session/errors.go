package session

import "errors"

var (
	// ErrSessionNotFound indicates no active session matches the identifier.
	// Expired, revoked, unknown and malformed identifiers are deliberately
	// indistinguishable.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrInvalidSession indicates a malformed session row was passed to a store.
	ErrInvalidSession = errors.New("session.invalid")

	// ErrNoStore indicates no store was provided to the manager.
	ErrNoStore = errors.New("session.no_store")

	// ErrNoSecret indicates the manager was constructed without a hashing secret.
	ErrNoSecret = errors.New("session.no_secret")

	// ErrSidGeneration indicates the random source failed.
	ErrSidGeneration = errors.New("session.sid_generation_failed")
)
