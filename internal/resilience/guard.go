package resilience

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// Predefined errors for guarded operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker rejects the call.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// GuardConfig holds configuration for a Guard.
type GuardConfig struct {
	// Name identifies the guarded dependency.
	Name string

	// Timeout bounds a single attempt.
	// Default: 2 seconds
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt.
	// Default: 2
	MaxRetries uint64

	// InitialInterval is the first retry backoff interval.
	// Default: 50ms
	InitialInterval time.Duration

	// MaxInterval caps the retry backoff interval.
	// Default: 1 second
	MaxInterval time.Duration

	// Breaker configures the circuit breaker. Nil uses DefaultBreakerConfig.
	Breaker *BreakerConfig

	// Registry receives health updates (optional).
	Registry *Registry
}

// DefaultGuardConfig returns the defaults used for store access.
func DefaultGuardConfig(name string) GuardConfig {
	cb := DefaultBreakerConfig()
	return GuardConfig{
		Name:            name,
		Timeout:         2 * time.Second,
		MaxRetries:      2,
		InitialInterval: 50 * time.Millisecond,
		MaxInterval:     time.Second,
		Breaker:         &cb,
	}
}

// Guard runs operations through a circuit breaker with exponential backoff retries.
type Guard struct {
	breaker  *gobreaker.CircuitBreaker[struct{}]
	config   GuardConfig
	registry *Registry

	stateChangedAt atomic.Pointer[time.Time]
}

// NewGuard creates a guard and registers it with cfg.Registry when set.
func NewGuard(cfg GuardConfig) *Guard {
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 50 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = time.Second
	}

	breakerCfg := DefaultBreakerConfig()
	if cfg.Breaker != nil {
		breakerCfg = *cfg.Breaker
	}

	g := &Guard{
		config:   cfg,
		registry: cfg.Registry,
	}
	// Runs under the breaker's lock, so it must not call back into the registry.
	g.breaker = newBreaker(cfg.Name, breakerCfg, func(_, _ gobreaker.State) {
		now := time.Now()
		g.stateChangedAt.Store(&now)
	})

	if g.registry != nil {
		g.registry.Register(cfg.Name, g)
	}

	return g
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op with a per-attempt timeout, retrying transient failures.
// Returns ErrCircuitOpen without calling op when the breaker is open.
func (g *Guard) Do(ctx context.Context, op func(ctx context.Context) error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = g.config.InitialInterval
	bo.MaxInterval = g.config.MaxInterval
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, g.config.MaxRetries), ctx)

	attempt := func() error {
		_, err := g.breaker.Execute(func() (struct{}, error) {
			attemptCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
			defer cancel()
			return struct{}{}, op(attemptCtx)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(ErrCircuitOpen)
		}
		return err
	}

	err := backoff.Retry(attempt, policy)

	if g.registry != nil {
		if err != nil {
			g.registry.RecordFailure(g.config.Name, err)
		} else {
			g.registry.RecordSuccess(g.config.Name)
		}
	}

	return err
}

// Name returns the guarded dependency's name.
func (g *Guard) Name() string {
	return g.config.Name
}

// State returns the current circuit breaker state.
func (g *Guard) State() gobreaker.State {
	return g.breaker.State()
}

// Counts returns the current circuit breaker counts.
func (g *Guard) Counts() gobreaker.Counts {
	return g.breaker.Counts()
}

// StateChangedAt returns when the breaker last changed state, or nil if it never has.
func (g *Guard) StateChangedAt() *time.Time {
	return g.stateChangedAt.Load()
}
