package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage implements Storage with an in-process map. Intended for
// tests and local development.
type MemoryStorage struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*User
	byEmail map[string]*User
}

// NewMemoryStorage creates an empty in-memory user store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		nextID:  1,
		byID:    make(map[int64]*User),
		byEmail: make(map[string]*User),
	}
}

// CreateUser inserts a new user, assigning the next sequential id.
func (m *MemoryStorage) CreateUser(ctx context.Context, email string, passwordHash []byte, name string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[email]; exists {
		return nil, ErrEmailAlreadyExists
	}

	user := &User{
		ID:           m.nextID,
		Email:        email,
		Name:         name,
		PasswordHash: append([]byte(nil), passwordHash...),
		CreatedAt:    time.Now(),
	}
	m.nextID++

	m.byID[user.ID] = user
	m.byEmail[user.Email] = user

	userCopy := *user
	return &userCopy, nil
}

// GetUserByEmail returns the user with the given email.
func (m *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.byEmail[email]
	if !exists {
		return nil, ErrUserNotFound
	}

	userCopy := *user
	return &userCopy, nil
}

// GetUserByID returns the user with the given id.
func (m *MemoryStorage) GetUserByID(ctx context.Context, id int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, exists := m.byID[id]
	if !exists {
		return nil, ErrUserNotFound
	}

	userCopy := *user
	return &userCopy, nil
}

// DeleteUser removes a user. Exists so tests can exercise the stale-session
// path where a session outlives its account.
func (m *MemoryStorage) DeleteUser(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, exists := m.byID[id]; exists {
		delete(m.byEmail, user.Email)
		delete(m.byID, id)
	}
	return nil
}
