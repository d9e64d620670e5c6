package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sessionkit/pkg/pg"
)

// PGStorage implements Storage on a PostgreSQL pool. Schema is managed by
// the migrations in migrations/; see 00001_create_users.sql.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a PostgreSQL-backed user store.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

// CreateUser inserts a new user. The unique index on email surfaces
// duplicates as ErrEmailAlreadyExists.
func (s *PGStorage) CreateUser(ctx context.Context, email string, passwordHash []byte, name string) (*User, error) {
	const query = `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, email, name, password_hash, created_at`

	var user User
	err := s.pool.QueryRow(ctx, query, email, passwordHash, name).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

// GetUserByEmail returns the user with the given email.
func (s *PGStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	const query = `
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE email = $1`

	return s.queryOne(ctx, query, email)
}

// GetUserByID returns the user with the given id.
func (s *PGStorage) GetUserByID(ctx context.Context, id int64) (*User, error) {
	const query = `
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE id = $1`

	return s.queryOne(ctx, query, id)
}

func (s *PGStorage) queryOne(ctx context.Context, query string, arg any) (*User, error) {
	var user User
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}
