package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore implements Store on Redis. Each row is a JSON value keyed by
// sid hash with a TTL equal to the remaining session lifetime, so expired
// rows age out naturally. Revocation rewrites the value in place, keeping
// the revoked row visible for audit until its natural expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(sidHash string) string {
	return redisKeyPrefix + sidHash
}

// Create stores a new session row with TTL until its expiry.
func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.SidHash == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrInvalidSession
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(sess.SidHash), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// FindActive returns the active session with the given sid hash.
func (s *RedisStore) FindActive(ctx context.Context, sidHash string) (*Session, error) {
	sess, err := s.load(ctx, sidHash)
	if err != nil {
		return nil, err
	}

	if !sess.IsActive() {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Revoke marks the matching active session as revoked.
func (s *RedisStore) Revoke(ctx context.Context, sidHash string, at time.Time) error {
	sess, err := s.load(ctx, sidHash)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	if sess.RevokedAt != nil {
		return nil
	}

	sess.RevokedAt = &at
	return s.rewrite(ctx, sess)
}

// RevokeForUser marks the matching active session as revoked if it belongs
// to the given user.
func (s *RedisStore) RevokeForUser(ctx context.Context, sidHash string, userID int64, at time.Time) error {
	sess, err := s.load(ctx, sidHash)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	if sess.UserID != userID || sess.RevokedAt != nil {
		return nil
	}

	sess.RevokedAt = &at
	return s.rewrite(ctx, sess)
}

func (s *RedisStore) load(ctx context.Context, sidHash string) (*Session, error) {
	data, err := s.client.Get(ctx, redisKey(sidHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// rewrite persists a mutated row, preserving the remaining natural TTL.
func (s *RedisStore) rewrite(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		// Already past expiry; nothing left to keep.
		return nil
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := s.client.Set(ctx, redisKey(sess.SidHash), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}
