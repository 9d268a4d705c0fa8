package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersCreated        uint64
	UsersRejected       uint64
	UserCount           int64
	EventsPublished     uint64
	EventsDropped       uint64
	HTTPRequests        uint64
	HTTPDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersCreated        atomic.Uint64
	usersRejected       atomic.Uint64
	userCount           atomic.Int64
	eventsPublished     atomic.Uint64
	eventsDropped       atomic.Uint64
	httpRequests        atomic.Uint64
	httpDurationTotalNs atomic.Int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersCreated:        m.usersCreated.Load(),
		UsersRejected:       m.usersRejected.Load(),
		UserCount:           m.userCount.Load(),
		EventsPublished:     m.eventsPublished.Load(),
		EventsDropped:       m.eventsDropped.Load(),
		HTTPRequests:        m.httpRequests.Load(),
		HTTPDurationTotalNs: m.httpDurationTotalNs.Load(),
	}
}

// IncUserCreated increments the created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	m.usersCreated.Add(1)
}

// IncUserRejected increments the rejected counter.
func (m *InMemoryRecorder) IncUserRejected() {
	m.usersRejected.Add(1)
}

// SetUserCount records the current store size.
func (m *InMemoryRecorder) SetUserCount(n int) {
	m.userCount.Store(int64(n))
}

// IncEventPublished counts publish outcomes.
func (m *InMemoryRecorder) IncEventPublished(status string) {
	if status == StatusSuccess {
		m.eventsPublished.Add(1)
		return
	}
	m.eventsDropped.Add(1)
}

// ObserveHTTPRequest records request count and latency.
func (m *InMemoryRecorder) ObserveHTTPRequest(_, _ string, _ int, duration time.Duration) {
	m.httpRequests.Add(1)
	m.httpDurationTotalNs.Add(duration.Nanoseconds())
}
