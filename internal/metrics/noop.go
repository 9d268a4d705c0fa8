package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncUserRejected is a no-op.
func (n *NoopRecorder) IncUserRejected() {}

// SetUserCount is a no-op.
func (n *NoopRecorder) SetUserCount(int) {}

// IncEventPublished is a no-op.
func (n *NoopRecorder) IncEventPublished(string) {}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(string, string, int, time.Duration) {}
