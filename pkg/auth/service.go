package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/sessionkit/pkg/logger"
	"github.com/dmitrymomot/sessionkit/pkg/sanitizer"
	"github.com/dmitrymomot/sessionkit/pkg/validator"
)

// MinPasswordLength is the minimum accepted password length on registration.
const MinPasswordLength = 6

// Service provides password-based registration and authentication against a
// Storage. Session handling is a separate concern; callers start a session
// after a successful Register or Authenticate.
type Service struct {
	storage    Storage
	bcryptCost int
	log        *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// NewService creates a password authentication service.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		bcryptCost: bcrypt.DefaultCost,
		log:        logger.NewDiscard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register creates a new user with email and password. Duplicate emails
// return ErrEmailAlreadyExists whether detected by the pre-check or by the
// storage's unique constraint.
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)
	name = sanitizer.TrimSpace(name)

	if err := validator.Apply(
		validator.ValidEmail("email", email),
		validator.MinLen("password", password, MinPasswordLength),
	); err != nil {
		return nil, err
	}

	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.storage.CreateUser(ctx, email, hash, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		logger.UserID(user.ID),
		logger.Component("auth"),
	)

	return user, nil
}

// Authenticate verifies email and password and returns the user if valid.
// Every failure maps to ErrInvalidCredentials so unknown emails and wrong
// passwords produce an identical observable outcome.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser resolves a user by id.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	return s.storage.GetUserByID(ctx, id)
}
