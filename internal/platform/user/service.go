package user

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service handles registration and authentication.
type Service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new user with a hashed password.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	if email == "" || !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	exists, err := s.repo.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check if user exists: %w", err)
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	u := &User{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now(),
	}

	if err := u.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// Login authenticates a user by email and password.
func (s *Service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			// Do not reveal whether the account exists.
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := u.CheckPassword(password); err != nil {
		return nil, err
	}

	return u, nil
}
