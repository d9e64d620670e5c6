package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map. Intended for tests
// and single-instance development setups; rows are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session // keyed by sid hash
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Create stores a new session row.
func (m *MemoryStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.SidHash == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sessionCopy := *sess
	m.sessions[sess.SidHash] = &sessionCopy
	return nil
}

// FindActive returns the active session with the given sid hash.
func (m *MemoryStore) FindActive(ctx context.Context, sidHash string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, exists := m.sessions[sidHash]
	if !exists || !sess.IsActive() {
		return nil, ErrSessionNotFound
	}

	sessionCopy := *sess
	return &sessionCopy, nil
}

// Revoke marks the matching active session as revoked. Missing or already
// revoked rows are a no-op.
func (m *MemoryStore) Revoke(ctx context.Context, sidHash string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, exists := m.sessions[sidHash]; exists && sess.RevokedAt == nil {
		sess.RevokedAt = &at
	}
	return nil
}

// RevokeForUser marks the matching active session as revoked if it belongs
// to the given user.
func (m *MemoryStore) RevokeForUser(ctx context.Context, sidHash string, userID int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, exists := m.sessions[sidHash]; exists && sess.UserID == userID && sess.RevokedAt == nil {
		sess.RevokedAt = &at
	}
	return nil
}

// Len reports the number of stored rows, revoked ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
