package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore implements Store on a PostgreSQL pool. Schema is managed by the
// migrations in migrations/; see 00002_create_sessions.sql.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a PostgreSQL-backed session store.
func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

// Create inserts a new session row.
func (s *PGStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.SidHash == "" {
		return ErrInvalidSession
	}

	const query = `
		INSERT INTO sessions (id, user_id, sid_hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := s.pool.Exec(ctx, query,
		sess.ID, sess.UserID, sess.SidHash, sess.CreatedAt, sess.ExpiresAt,
	); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// FindActive returns the session whose revoked_at is unset and whose expiry
// is still in the future.
func (s *PGStore) FindActive(ctx context.Context, sidHash string) (*Session, error) {
	const query = `
		SELECT id, user_id, sid_hash, created_at, expires_at, revoked_at
		FROM sessions
		WHERE sid_hash = $1 AND revoked_at IS NULL AND expires_at > $2
		LIMIT 1`

	var sess Session
	err := s.pool.QueryRow(ctx, query, sidHash, time.Now()).Scan(
		&sess.ID, &sess.UserID, &sess.SidHash,
		&sess.CreatedAt, &sess.ExpiresAt, &sess.RevokedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return &sess, nil
}

// Revoke marks every active row with the given sid hash as revoked.
func (s *PGStore) Revoke(ctx context.Context, sidHash string, at time.Time) error {
	const query = `
		UPDATE sessions SET revoked_at = $2
		WHERE sid_hash = $1 AND revoked_at IS NULL`

	if _, err := s.pool.Exec(ctx, query, sidHash, at); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// RevokeForUser marks every active row matching both sid hash and user as revoked.
func (s *PGStore) RevokeForUser(ctx context.Context, sidHash string, userID int64, at time.Time) error {
	const query = `
		UPDATE sessions SET revoked_at = $3
		WHERE sid_hash = $1 AND user_id = $2 AND revoked_at IS NULL`

	if _, err := s.pool.Exec(ctx, query, sidHash, userID, at); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
