// Package memory provides map-backed store implementations for local
// development and tests. The mutex serializes writes, so the uniqueness
// check in Create is atomic just like the MongoDB unique index.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fullstacklabs/identity-api/internal/core/domain"
)

type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}

	stored := *user
	stored.ID = uuid.NewString()
	r.byEmail[stored.Email] = &stored
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// Delete removes a user. Not part of ports.UserRepository; used by tests to
// simulate an account removed after a token was issued.
func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	delete(r.byEmail, u.Email)
	return nil
}
