// Package events publishes user lifecycle notifications to a Redis stream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/penshort/userapi/internal/metrics"
	"github.com/penshort/userapi/internal/model"
)

const (
	// StreamKey is the Redis stream for user events.
	StreamKey = "stream:user_events"

	// MaxStreamLen is the approximate max length of the stream.
	MaxStreamLen = 10000

	// PublishTimeout is the max time to wait for Redis publish.
	PublishTimeout = 250 * time.Millisecond

	// TypeUserCreated is emitted after a user is added to the store.
	TypeUserCreated = "user.created"
)

// UserEvent is the payload written to the stream.
type UserEvent struct {
	EventID   string `json:"event_id"`
	Type      string `json:"type"`
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"created_at"` // Unix milliseconds
}

// Publisher emits user events.
type Publisher interface {
	PublishUserCreated(ctx context.Context, user *model.User) (string, error)
	PublishUserCreatedAsync(user *model.User)
	Close(ctx context.Context) error
}

// StreamAdder is the subset of the Redis client used for publishing.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisPublisher appends events to a Redis stream.
type RedisPublisher struct {
	redis   StreamAdder
	logger  *slog.Logger
	metrics metrics.Recorder
	wg      sync.WaitGroup
}

// NewRedisPublisher creates a publisher backed by client.
func NewRedisPublisher(client StreamAdder, logger *slog.Logger, recorder metrics.Recorder) *RedisPublisher {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RedisPublisher{
		redis:   client,
		logger:  logger.With("component", "events.publisher"),
		metrics: recorder,
	}
}

// NewUserCreated builds the stream payload for a freshly created user.
func NewUserCreated(user *model.User) UserEvent {
	return UserEvent{
		EventID:   ulid.Make().String(),
		Type:      TypeUserCreated,
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UnixMilli(),
	}
}

// PublishUserCreated adds a user.created event to the stream synchronously
// and returns the stream entry ID.
func (p *RedisPublisher) PublishUserCreated(ctx context.Context, user *model.User) (string, error) {
	event := NewUserCreated(user)

	data, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}

	result, err := p.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamKey,
		MaxLen: MaxStreamLen,
		Approx: true,
		ID:     "*",
		Values: map[string]interface{}{
			"type":    event.Type,
			"payload": string(data),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd: %w", err)
	}

	return result, nil
}

// PublishUserCreatedAsync publishes without blocking the caller, retrying
// with backoff up to MaxPublishAttempts. Errors are logged and counted, never returned.
func (p *RedisPublisher) PublishUserCreatedAsync(user *model.User) {
	u := *user

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		var (
			streamID string
			err      error
		)
		for attempt := 0; ; attempt++ {
			ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
			streamID, err = p.PublishUserCreated(ctx, &u)
			cancel()
			if err == nil || IsExhausted(attempt+1, MaxPublishAttempts) {
				break
			}
			time.Sleep(NextRetryDelay(attempt))
		}

		if err != nil {
			p.logger.Warn("failed to publish user event",
				"user_id", u.ID,
				"attempts", MaxPublishAttempts,
				"error", err,
			)
			p.metrics.IncEventPublished(metrics.StatusDropped)
			return
		}

		p.logger.Debug("user event published",
			"user_id", u.ID,
			"stream_id", streamID,
		)
		p.metrics.IncEventPublished(metrics.StatusSuccess)
	}()
}

// Close waits for in-flight async publishes or until ctx is done.
func (p *RedisPublisher) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for pending events: %w", ctx.Err())
	}
}

// NoopPublisher discards events. Used when no Redis is configured.
type NoopPublisher struct{}

// NewNoop returns a Publisher that drops every event.
func NewNoop() Publisher {
	return NoopPublisher{}
}

// PublishUserCreated is a no-op.
func (NoopPublisher) PublishUserCreated(context.Context, *model.User) (string, error) {
	return "", nil
}

// PublishUserCreatedAsync is a no-op.
func (NoopPublisher) PublishUserCreatedAsync(*model.User) {}

// Close is a no-op.
func (NoopPublisher) Close(context.Context) error { return nil }
