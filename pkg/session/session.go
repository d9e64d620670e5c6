package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a single authenticated session row. Only the secret-keyed hash
// of the session identifier is ever held here; the raw identifier lives in
// the client cookie and nowhere else.
type Session struct {
	ID        uuid.UUID  `json:"id"`
	SidHash   string     `json:"sid_hash"`
	UserID    int64      `json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// newSession creates a session row for the given user with a TTL-based expiry.
func newSession(sidHash string, userID int64, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		SidHash:   sidHash,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true once the TTL has elapsed.
func (s *Session) IsExpired() bool {
	return s != nil && !time.Now().Before(s.ExpiresAt)
}

// IsRevoked returns true if the session was ended by logout or rotation.
func (s *Session) IsRevoked() bool {
	return s != nil && s.RevokedAt != nil
}

// IsActive reports whether the session can still authenticate requests.
// Expired and revoked are both terminal and equivalent for resolution;
// they are recorded separately only for audit.
func (s *Session) IsActive() bool {
	return s != nil && !s.IsRevoked() && !s.IsExpired()
}
