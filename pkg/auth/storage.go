package auth

import "context"

// Storage defines the user persistence contract. Implementations must
// enforce email uniqueness and return stable integer ids.
type Storage interface {
	// CreateUser inserts a new user and returns it with its assigned id.
	// A duplicate email returns ErrEmailAlreadyExists.
	CreateUser(ctx context.Context, email string, passwordHash []byte, name string) (*User, error)

	// GetUserByEmail returns the user with the given email, including the
	// password hash, or ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByID returns the user with the given id or ErrUserNotFound.
	GetUserByID(ctx context.Context, id int64) (*User, error)
}
