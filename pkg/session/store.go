package session

import (
	"context"
	"time"
)

// Store defines the persistence contract for session rows. Implementations
// only ever see the secret-keyed sid hash, never the raw identifier.
//
// Revocation marks rows and never deletes them; retention is an external
// concern. Revoking an already revoked or missing row is a no-op, which
// keeps every revocation path idempotent.
type Store interface {
	// Create inserts a new session row.
	Create(ctx context.Context, session *Session) error

	// FindActive returns the session with the given sid hash whose
	// revoked_at is unset and whose expiry is in the future.
	// Returns ErrSessionNotFound otherwise.
	FindActive(ctx context.Context, sidHash string) (*Session, error)

	// Revoke marks every active row with the given sid hash as revoked at
	// the given time.
	Revoke(ctx context.Context, sidHash string, at time.Time) error

	// RevokeForUser marks every active row matching both the sid hash and
	// the user as revoked. Used by rotation, where the presented identifier
	// must belong to the authenticated user.
	RevokeForUser(ctx context.Context, sidHash string, userID int64, at time.Time) error
}
