package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func newTestRow(sidHash string, userID int64, ttl time.Duration) *session.Session {
	now := time.Now()
	return &session.Session{
		ID:        uuid.New(),
		SidHash:   sidHash,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create and find", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		row := newTestRow("hash-a", 1, time.Hour)
		require.NoError(t, store.Create(ctx, row))

		found, err := store.FindActive(ctx, "hash-a")
		require.NoError(t, err)
		assert.Equal(t, row.ID, found.ID)
	})

	t.Run("rejects invalid rows", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		assert.ErrorIs(t, store.Create(ctx, nil), session.ErrInvalidSession)
		assert.ErrorIs(t, store.Create(ctx, &session.Session{}), session.ErrInvalidSession)
	})

	t.Run("expired row not active", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		require.NoError(t, store.Create(ctx, newTestRow("hash-b", 1, -time.Minute)))

		_, err := store.FindActive(ctx, "hash-b")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("revoke", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		require.NoError(t, store.Create(ctx, newTestRow("hash-c", 1, time.Hour)))

		require.NoError(t, store.Revoke(ctx, "hash-c", time.Now()))
		_, err := store.FindActive(ctx, "hash-c")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)

		// Row kept for audit.
		assert.Equal(t, 1, store.Len())
	})

	t.Run("revoke for user checks ownership", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		require.NoError(t, store.Create(ctx, newTestRow("hash-d", 1, time.Hour)))

		require.NoError(t, store.RevokeForUser(ctx, "hash-d", 2, time.Now()))
		_, err := store.FindActive(ctx, "hash-d")
		assert.NoError(t, err, "wrong user must not revoke")

		require.NoError(t, store.RevokeForUser(ctx, "hash-d", 1, time.Now()))
		_, err = store.FindActive(ctx, "hash-d")
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})

	t.Run("returned rows are copies", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		require.NoError(t, store.Create(ctx, newTestRow("hash-e", 1, time.Hour)))

		found, err := store.FindActive(ctx, "hash-e")
		require.NoError(t, err)
		found.UserID = 999

		again, err := store.FindActive(ctx, "hash-e")
		require.NoError(t, err)
		assert.Equal(t, int64(1), again.UserID)
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		require.NoError(t, store.Create(ctx, newTestRow("hash-f", 1, time.Hour)))

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = store.FindActive(ctx, "hash-f")
			}()
			go func() {
				defer wg.Done()
				_ = store.Revoke(ctx, "hash-f", time.Now())
			}()
		}
		wg.Wait()
	})
}
