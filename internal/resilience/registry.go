package resilience

import (
	"sort"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Health represents the health of a guarded dependency.
type Health struct {
	// Name is the dependency identifier.
	Name string `json:"name"`

	// CircuitState is the current circuit breaker state.
	CircuitState gobreaker.State `json:"-"`

	// Counts contains circuit breaker statistics.
	Counts gobreaker.Counts `json:"-"`

	// StateChangedAt is when the breaker last opened or closed, if ever.
	StateChangedAt *time.Time `json:"stateChangedAt,omitempty"`

	// LastSuccessAt is the time of the last successful call.
	LastSuccessAt *time.Time `json:"lastSuccessAt,omitempty"`

	// LastFailureAt is the time of the last failed call.
	LastFailureAt *time.Time `json:"lastFailureAt,omitempty"`

	// LastError is the most recent error message, if any.
	LastError string `json:"lastError,omitempty"`
}

// IsHealthy reports whether the circuit is closed.
func (h *Health) IsHealthy() bool {
	return h.CircuitState == gobreaker.StateClosed
}

// IsDegraded reports whether the circuit is half-open.
func (h *Health) IsDegraded() bool {
	return h.CircuitState == gobreaker.StateHalfOpen
}

// IsUnhealthy reports whether the circuit is open.
func (h *Health) IsUnhealthy() bool {
	return h.CircuitState == gobreaker.StateOpen
}

// Registry tracks guarded dependencies and their health.
type Registry struct {
	mu     sync.RWMutex
	guards map[string]*registeredGuard
	now    func() time.Time
}

type registeredGuard struct {
	guard         *Guard
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		guards: make(map[string]*registeredGuard),
		now:    time.Now,
	}
}

// Register adds a guard to the registry, replacing any guard with the same name.
func (r *Registry) Register(name string, g *Guard) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.guards[name] = &registeredGuard{guard: g}
}

// Unregister removes a guard.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.guards, name)
}

// RecordSuccess records a successful call.
func (r *Registry) RecordSuccess(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.guards[name]; ok {
		now := r.now()
		g.lastSuccessAt = &now
	}
}

// RecordFailure records a failed call.
func (r *Registry) RecordFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.guards[name]; ok {
		now := r.now()
		g.lastFailureAt = &now
		if err != nil {
			g.lastError = err.Error()
		}
	}
}

// Health returns the health of a guard, or nil if it is not registered.
func (r *Registry) Health(name string) *Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.guards[name]
	if !ok {
		return nil
	}
	return g.health(name)
}

// AllHealth returns the health of every guard, sorted by name.
func (r *Registry) AllHealth() []*Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := make([]*Health, 0, len(r.guards))
	for name, g := range r.guards {
		health = append(health, g.health(name))
	}
	sort.Slice(health, func(i, j int) bool {
		return health[i].Name < health[j].Name
	})
	return health
}

// Len returns the number of registered guards.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.guards)
}

func (g *registeredGuard) health(name string) *Health {
	return &Health{
		Name:           name,
		CircuitState:   g.guard.State(),
		Counts:         g.guard.Counts(),
		StateChangedAt: g.guard.StateChangedAt(),
		LastSuccessAt:  g.lastSuccessAt,
		LastFailureAt:  g.lastFailureAt,
		LastError:      g.lastError,
	}
}
