package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/penshort/userapi/internal/metrics"
	"github.com/penshort/userapi/internal/model"
)

// fakeStream records XAdd calls.
type fakeStream struct {
	mu    sync.Mutex
	calls []*redis.XAddArgs
	err   error
	// failFirst makes the first n calls fail even when err is nil.
	failFirst int
}

func (f *fakeStream) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, a)
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	if len(f.calls) <= f.failFirst {
		return redis.NewStringResult("", errors.New("LOADING Redis is loading the dataset in memory"))
	}
	return redis.NewStringResult("1768478400000-0", nil)
}

func (f *fakeStream) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser() *model.User {
	return &model.User{
		ID:        3,
		Name:      "Alice",
		Email:     "alice@example.com",
		CreatedAt: time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewUserCreated(t *testing.T) {
	t.Parallel()

	user := testUser()
	event := NewUserCreated(user)

	if event.Type != TypeUserCreated {
		t.Errorf("Type = %q, want %q", event.Type, TypeUserCreated)
	}
	if event.UserID != 3 || event.Name != "Alice" || event.Email != "alice@example.com" {
		t.Errorf("unexpected event fields: %+v", event)
	}
	if event.CreatedAt != user.CreatedAt.UnixMilli() {
		t.Errorf("CreatedAt = %d, want %d", event.CreatedAt, user.CreatedAt.UnixMilli())
	}
	if _, err := ulid.Parse(event.EventID); err != nil {
		t.Errorf("EventID %q is not a ULID: %v", event.EventID, err)
	}
}

func TestRedisPublisher_PublishUserCreated(t *testing.T) {
	t.Parallel()

	stream := &fakeStream{}
	p := NewRedisPublisher(stream, discardLogger(), nil)

	id, err := p.PublishUserCreated(context.Background(), testUser())
	if err != nil {
		t.Fatalf("PublishUserCreated() error = %v", err)
	}
	if id != "1768478400000-0" {
		t.Errorf("stream id = %q", id)
	}

	if stream.callCount() != 1 {
		t.Fatalf("expected 1 XAdd call, got %d", stream.callCount())
	}

	args := stream.calls[0]
	if args.Stream != StreamKey {
		t.Errorf("Stream = %q, want %q", args.Stream, StreamKey)
	}
	if args.MaxLen != MaxStreamLen || !args.Approx {
		t.Errorf("expected approximate MAXLEN %d, got %d approx=%v", MaxStreamLen, args.MaxLen, args.Approx)
	}

	values, ok := args.Values.(map[string]interface{})
	if !ok {
		t.Fatalf("Values has type %T", args.Values)
	}
	if values["type"] != TypeUserCreated {
		t.Errorf("type = %v", values["type"])
	}

	var event UserEvent
	if err := json.Unmarshal([]byte(values["payload"].(string)), &event); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if event.UserID != 3 {
		t.Errorf("payload user_id = %d, want 3", event.UserID)
	}
}

func TestRedisPublisher_PublishError(t *testing.T) {
	t.Parallel()

	stream := &fakeStream{err: errors.New("connection refused")}
	p := NewRedisPublisher(stream, discardLogger(), nil)

	_, err := p.PublishUserCreated(context.Background(), testUser())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRedisPublisher_Async(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		stream        *fakeStream
		wantCalls     int
		wantPublished uint64
		wantDropped   uint64
	}{
		{"success", &fakeStream{}, 1, 1, 0},
		{"retried", &fakeStream{failFirst: 1}, 2, 1, 0},
		{"dropped", &fakeStream{err: errors.New("timeout")}, MaxPublishAttempts, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stream := tt.stream
			recorder := metrics.NewInMemory()
			p := NewRedisPublisher(stream, discardLogger(), recorder)

			p.PublishUserCreatedAsync(testUser())

			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := p.Close(ctx); err != nil {
				t.Fatalf("Close() error = %v", err)
			}

			if stream.callCount() != tt.wantCalls {
				t.Errorf("XAdd calls = %d, want %d", stream.callCount(), tt.wantCalls)
			}

			snap := recorder.Snapshot()
			if snap.EventsPublished != tt.wantPublished || snap.EventsDropped != tt.wantDropped {
				t.Errorf("published/dropped = %d/%d, want %d/%d",
					snap.EventsPublished, snap.EventsDropped, tt.wantPublished, tt.wantDropped)
			}
		})
	}
}

func TestNoopPublisher(t *testing.T) {
	t.Parallel()

	p := NewNoop()
	id, err := p.PublishUserCreated(context.Background(), testUser())
	if err != nil || id != "" {
		t.Errorf("noop publish = (%q, %v)", id, err)
	}
	p.PublishUserCreatedAsync(testUser())
	if err := p.Close(context.Background()); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
