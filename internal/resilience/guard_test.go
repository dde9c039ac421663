package resilience_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaylorONeal/jetsweep/internal/resilience"
)

var errTransient = errors.New("connection reset")

func fastConfig(name string) resilience.GuardConfig {
	cfg := resilience.DefaultGuardConfig(name)
	cfg.InitialInterval = time.Millisecond
	cfg.MaxInterval = 5 * time.Millisecond
	return cfg
}

func TestGuard_Success(t *testing.T) {
	g := resilience.NewGuard(fastConfig("store"))

	var calls atomic.Int32
	err := g.Do(context.Background(), func(context.Context) error {
		calls.Add(1)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, gobreaker.StateClosed, g.State())
	assert.Equal(t, "store", g.Name())
}

func TestGuard_RetriesTransientFailures(t *testing.T) {
	cfg := fastConfig("store-retry")
	cfg.MaxRetries = 5
	cb := resilience.DefaultBreakerConfig()
	cb.ReadyToTrip = func(counts gobreaker.Counts) bool { return counts.Requests >= 100 }
	cfg.Breaker = &cb
	g := resilience.NewGuard(cfg)

	var calls atomic.Int32
	err := g.Do(context.Background(), func(context.Context) error {
		if calls.Add(1) < 3 {
			return errTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load(), "should have retried until success")
}

func TestGuard_GivesUpAfterMaxRetries(t *testing.T) {
	cfg := fastConfig("store-exhausted")
	cfg.MaxRetries = 2
	cb := resilience.DefaultBreakerConfig()
	cb.ReadyToTrip = func(counts gobreaker.Counts) bool { return false }
	cfg.Breaker = &cb
	g := resilience.NewGuard(cfg)

	var calls atomic.Int32
	err := g.Do(context.Background(), func(context.Context) error {
		calls.Add(1)
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGuard_PermanentErrorIsNotRetried(t *testing.T) {
	g := resilience.NewGuard(fastConfig("store-permanent"))

	errCorrupt := errors.New("corrupt")
	var calls atomic.Int32
	err := g.Do(context.Background(), func(context.Context) error {
		calls.Add(1)
		return resilience.Permanent(errCorrupt)
	})

	assert.ErrorIs(t, err, errCorrupt)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGuard_CircuitOpens(t *testing.T) {
	cfg := fastConfig("store-trip")
	cfg.MaxRetries = 1
	cb := resilience.DefaultBreakerConfig()
	cb.ReadyToTrip = func(counts gobreaker.Counts) bool { return counts.ConsecutiveFailures >= 2 }
	cb.Timeout = time.Minute
	cfg.Breaker = &cb
	g := resilience.NewGuard(cfg)

	failing := func(context.Context) error { return errTransient }

	_ = g.Do(context.Background(), failing)
	assert.Equal(t, gobreaker.StateOpen, g.State())

	var calls atomic.Int32
	err := g.Do(context.Background(), func(context.Context) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(0), calls.Load())
	assert.NotNil(t, g.StateChangedAt())
}

var errUndecodable = errors.New("stored document is not valid JSON")

func TestGuard_HealthyErrorsDoNotTrip(t *testing.T) {
	cfg := fastConfig("store-healthy")
	cfg.MaxRetries = 1
	cb := resilience.DefaultBreakerConfig()
	cb.ReadyToTrip = func(counts gobreaker.Counts) bool { return counts.ConsecutiveFailures >= 1 }
	cb.Healthy = func(err error) bool { return errors.Is(err, errUndecodable) }
	cfg.Breaker = &cb
	g := resilience.NewGuard(cfg)

	err := g.Do(context.Background(), func(context.Context) error {
		return resilience.Permanent(errUndecodable)
	})
	assert.ErrorIs(t, err, errUndecodable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = g.Do(ctx, func(ctx context.Context) error { return ctx.Err() })

	assert.Equal(t, gobreaker.StateClosed, g.State())
	assert.Nil(t, g.StateChangedAt())

	_ = g.Do(context.Background(), func(context.Context) error { return resilience.Permanent(errTransient) })
	assert.Equal(t, gobreaker.StateOpen, g.State(), "other failures still trip")
}

func TestGuard_AttemptTimeout(t *testing.T) {
	cfg := fastConfig("store-slow")
	cfg.Timeout = 10 * time.Millisecond
	cfg.MaxRetries = 1
	g := resilience.NewGuard(cfg)

	err := g.Do(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGuard_ContextCancelled(t *testing.T) {
	g := resilience.NewGuard(fastConfig("store-cancel"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Do(ctx, func(ctx context.Context) error {
		return ctx.Err()
	})

	assert.Error(t, err)
}

func TestDefaultReadyToTrip(t *testing.T) {
	assert.False(t, resilience.DefaultReadyToTrip(gobreaker.Counts{Requests: 4, TotalFailures: 4}))
	assert.True(t, resilience.DefaultReadyToTrip(gobreaker.Counts{Requests: 5, TotalFailures: 3}))
	assert.False(t, resilience.DefaultReadyToTrip(gobreaker.Counts{Requests: 10, TotalFailures: 4}))
}
