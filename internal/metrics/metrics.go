// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Event publish outcomes.
const (
	StatusSuccess = "success"
	StatusDropped = "dropped"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory for tests.
type Recorder interface {
	// User store metrics
	IncUserCreated()
	IncUserRejected()
	SetUserCount(n int)

	// Event stream metrics
	IncEventPublished(status string) // status: "success" or "dropped"

	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)
}
