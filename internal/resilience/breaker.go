// Package resilience guards calls to the recent-search store with a circuit
// breaker and retries, and tracks the health of each guarded store.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerConfig controls when a guard stops calling its store.
type BreakerConfig struct {
	// Timeout is how long calls are rejected after the breaker opens. One trial
	// call is then let through to test the store.
	// Default: 30 seconds
	Timeout time.Duration

	// Interval clears the failure counts while closed.
	// Default: 0 (never)
	Interval time.Duration

	// ReadyToTrip decides when to open. Nil uses DefaultReadyToTrip.
	ReadyToTrip func(counts gobreaker.Counts) bool

	// Healthy reports whether a failed call still shows the store answering,
	// such as data it returned that could not be decoded. Caller cancellation
	// always counts as healthy.
	Healthy func(err error) bool
}

// DefaultBreakerConfig returns the breaker settings used for store guards.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Timeout:     30 * time.Second,
		ReadyToTrip: DefaultReadyToTrip,
	}
}

// DefaultReadyToTrip opens the breaker once at least 5 calls were made and half
// or more of them failed.
func DefaultReadyToTrip(counts gobreaker.Counts) bool {
	if counts.Requests < 5 {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
}

func newBreaker(name string, cfg BreakerConfig, onStateChange func(from, to gobreaker.State)) *gobreaker.CircuitBreaker[struct{}] {
	readyToTrip := cfg.ReadyToTrip
	if readyToTrip == nil {
		readyToTrip = DefaultReadyToTrip
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.Interval,
		Timeout:     timeout,
		ReadyToTrip: readyToTrip,
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			return cfg.Healthy != nil && cfg.Healthy(err)
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			if onStateChange != nil {
				onStateChange(from, to)
			}
		},
	})
}
