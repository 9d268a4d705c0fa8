package repository

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/penshort/userapi/internal/model"
)

// Common errors for user repository operations.
var (
	ErrInvalidInput = errors.New("name and email are required")
	ErrUserNotFound = errors.New("user not found")
)

// List returns a snapshot of all users in insertion order.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// ids are assigned in ascending order, so users stays sorted by ID
	idx, found := slices.BinarySearchFunc(r.users, id, func(u model.User, target int64) int {
		return cmp.Compare(u.ID, target)
	})
	if found {
		user := r.users[idx]
		return &user, nil
	}

	return nil, ErrUserNotFound
}

// Create validates name and email, assigns the next identifier and appends the user.
// On ErrInvalidInput neither the list nor the counter is touched.
func (r *UserRepository) Create(ctx context.Context, name, email string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user := model.User{
		ID:        r.nextID,
		Name:      name,
		Email:     email,
		CreatedAt: r.now().UTC(),
	}
	r.nextID++
	r.users = append(r.users, user)

	return &user, nil
}
