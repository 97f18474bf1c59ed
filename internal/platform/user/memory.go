package user

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory user store keyed by email.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users: make(map[string]*User),
	}
}

// Create stores a new user.
func (r *MemoryRepository) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Email]; ok {
		return ErrUserAlreadyExists
	}

	clone := *u
	r.users[u.Email] = &clone
	return nil
}

// GetByEmail retrieves a user by email.
func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}

	clone := *u
	return &clone, nil
}

// Exists reports whether a user with the given email is stored.
func (r *MemoryRepository) Exists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[email]
	return ok, nil
}
