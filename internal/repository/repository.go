// Package repository provides the in-memory user store.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/penshort/userapi/internal/model"
)

// seedUsers are present in every freshly constructed store, in this order.
var seedUsers = []struct {
	name  string
	email string
}{
	{name: "John Doe", email: "john@example.com"},
	{name: "Jane Smith", email: "jane@example.com"},
}

// Option configures a UserRepository.
type Option func(*UserRepository)

// WithClock overrides the time source used to stamp CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(r *UserRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// UserRepository holds users and the identifier counter for the lifetime of the process.
// All access goes through mu; nothing is persisted.
type UserRepository struct {
	mu     sync.RWMutex
	users  []model.User
	nextID int64
	now    func() time.Time
}

// NewUserRepository creates a store populated with the seed records.
func NewUserRepository(opts ...Option) *UserRepository {
	r := &UserRepository{
		users:  make([]model.User, 0, len(seedUsers)),
		nextID: 1,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	createdAt := r.now().UTC()
	for _, seed := range seedUsers {
		r.users = append(r.users, model.User{
			ID:        r.nextID,
			Name:      seed.name,
			Email:     seed.email,
			CreatedAt: createdAt,
		})
		r.nextID++
	}

	return r
}

// Ping reports store availability. The in-memory store is always reachable.
func (r *UserRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Count returns the number of stored users.
func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}
