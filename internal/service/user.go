// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/penshort/userapi/internal/events"
	"github.com/penshort/userapi/internal/metrics"
	"github.com/penshort/userapi/internal/model"
	"github.com/penshort/userapi/internal/repository"
)

// Service errors.
var (
	ErrInvalidInput = repository.ErrInvalidInput
	ErrUserNotFound = repository.ErrUserNotFound
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// UserStore is the storage contract the service depends on.
type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, name, email string) (*model.User, error)
	Count() int
}

// UserService handles user business logic.
type UserService struct {
	store     UserStore
	publisher events.Publisher
	metrics   metrics.Recorder
	logger    *slog.Logger

	// countMu orders Count reads with gauge updates.
	countMu sync.Mutex
}

// NewUserService creates a new UserService. Nil publisher or recorder fall back to no-ops.
func NewUserService(store UserStore, publisher events.Publisher, recorder metrics.Recorder, logger *slog.Logger) *UserService {
	if publisher == nil {
		publisher = events.NewNoop()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	recorder.SetUserCount(store.Count())

	return &UserService{
		store:     store,
		publisher: publisher,
		metrics:   recorder,
		logger:    logger.With("component", "service.user"),
	}
}

// CreateUserInput defines input for creating a user. Both fields are
// required after surrounding whitespace is trimmed; no format checks apply.
type CreateUserInput struct {
	Name  string `validate:"required"`
	Email string `validate:"required"`
}

// ListUsers returns every user in creation order.
func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.store.List(ctx)
}

// GetUser returns a single user.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.store.GetByID(ctx, id)
}

// CreateUser stores a new user and announces it on the event stream.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validate.Struct(input); err != nil {
		s.metrics.IncUserRejected()
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user, err := s.store.Create(ctx, input.Name, input.Email)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			s.metrics.IncUserRejected()
		}
		return nil, err
	}

	s.metrics.IncUserCreated()
	s.updateUserCount()
	s.publisher.PublishUserCreatedAsync(user)

	s.logger.Debug("user stored", "user_id", user.ID)

	return user, nil
}

// updateUserCount publishes the current store size. Reads and sets are
// serialized so a slower goroutine cannot overwrite a newer count.
func (s *UserService) updateUserCount() {
	s.countMu.Lock()
	defer s.countMu.Unlock()
	s.metrics.SetUserCount(s.store.Count())
}
