package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"
)

const sidBytes = 32

// Manager handles the session lifecycle: start, resolve, rotate and end.
// It holds no mutable state beyond the store; the secret and TTL are
// immutable configuration.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL overrides the default session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// New creates a session manager. The secret keys the sid hash derivation;
// without it stored rows would be forgeable from a leaked database, so an
// empty secret fails construction.
func New(store Store, secret string, opts ...Option) (*Manager, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if secret == "" {
		return nil, ErrNoSecret
	}

	m := &Manager{
		store:  store,
		secret: secret,
		ttl:    DefaultTTL,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Start generates a fresh high-entropy identifier, persists its hash as a
// new active session for the user, and returns the raw identifier for
// cookie issuance. Existing sessions for the user are untouched, so
// multiple devices may hold sessions concurrently.
func (m *Manager) Start(ctx context.Context, userID int64) (string, *Session, error) {
	sid, err := generateSid()
	if err != nil {
		return "", nil, err
	}

	sess := newSession(m.hashSid(sid), userID, m.ttl)
	if err := m.store.Create(ctx, sess); err != nil {
		return "", nil, err
	}

	return sid, sess, nil
}

// Resolve looks up the active session for a raw identifier. It is a pure
// read: expiry is fixed-window and never extended on resolution. Expired,
// revoked and unknown identifiers all yield ErrSessionNotFound.
func (m *Manager) Resolve(ctx context.Context, sid string) (*Session, error) {
	if sid == "" {
		return nil, ErrSessionNotFound
	}

	sess, err := m.store.FindActive(ctx, m.hashSid(sid))
	if err != nil {
		return nil, ErrSessionNotFound
	}

	return sess, nil
}

// Rotate revokes every active session matching the presented identifier and
// user, then starts a fresh one. The two steps are not atomic: a request
// cancelled between them leaves the old session revoked and no new one
// issued, which forces re-authentication rather than corrupting state.
func (m *Manager) Rotate(ctx context.Context, oldSid string, userID int64) (string, *Session, error) {
	if err := m.store.RevokeForUser(ctx, m.hashSid(oldSid), userID, time.Now()); err != nil {
		return "", nil, err
	}

	return m.Start(ctx, userID)
}

// End revokes every active session matching the identifier. It does not
// need the owning user: logout must succeed even when the caller's identity
// is already stale.
func (m *Manager) End(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	return m.store.Revoke(ctx, m.hashSid(sid), time.Now())
}

// hashSid derives the stored representation of a raw identifier. One-way
// and secret-keyed: a leaked row cannot be turned back into a cookie
// without the session secret.
func (m *Manager) hashSid(sid string) string {
	sum := sha256.Sum256([]byte(sid + "." + m.secret))
	return hex.EncodeToString(sum[:])
}

// generateSid creates a cryptographically secure session identifier.
// 32 bytes = 256 bits of entropy.
func generateSid() (string, error) {
	b := make([]byte, sidBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrSidGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
