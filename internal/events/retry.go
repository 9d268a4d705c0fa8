package events

import (
	"math/rand"
	"time"
)

// Backoff between async publish attempts.
// Attempt 1: 50ms, Attempt 2: 200ms
var retryDelays = []time.Duration{
	50 * time.Millisecond,
	200 * time.Millisecond,
}

const (
	// MaxPublishAttempts bounds how often an async event is tried before it is dropped.
	MaxPublishAttempts = 3

	// JitterFactor is the ±percentage of jitter applied to delays.
	JitterFactor = 0.2
)

// NextRetryDelay returns the backoff after a failed attempt, with jitter.
// attempt is 0-indexed.
func NextRetryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= len(retryDelays) {
		attempt = len(retryDelays) - 1
	}

	base := retryDelays[attempt]
	jitterRange := float64(base) * JitterFactor
	jitter := (rand.Float64()*2 - 1) * jitterRange

	return time.Duration(float64(base) + jitter)
}

// IsExhausted reports whether attempts has reached maxAttempts.
func IsExhausted(attempts, maxAttempts int) bool {
	return attempts >= maxAttempts
}
