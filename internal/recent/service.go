// Package recent keeps a short, newest-first list of past itinerary searches.
//
// Storage faults never reach callers as failures: they are logged and the
// operation degrades to a no-op or an empty list.
package recent

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/TaylorONeal/jetsweep/internal/resilience"
)

// ServiceConfig holds configuration for the recent search service.
type ServiceConfig struct {
	// Repository persists the list.
	Repository Repository

	// Guard wraps repository calls (optional).
	Guard *resilience.Guard

	// Logger for storage faults.
	Logger zerolog.Logger

	// Clock returns the creation time of new entries (default: time.Now).
	Clock func() time.Time

	// NewID generates entry ids (default: random UUID).
	NewID func() string

	// Max bounds the list length (default: MaxSearches).
	Max int
}

// Service manages the recent search list.
type Service struct {
	repo   Repository
	guard  *resilience.Guard
	logger zerolog.Logger
	clock  func() time.Time
	newID  func() string
	max    int

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// NewService creates a new recent search service.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	newID := cfg.NewID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}

	limit := cfg.Max
	if limit <= 0 {
		limit = MaxSearches
	}

	return &Service{
		repo:   cfg.Repository,
		guard:  cfg.Guard,
		logger: cfg.Logger,
		clock:  clock,
		newID:  newID,
		max:    limit,
	}
}

// Save prepends a new search, dropping older entries for the same airport and trip
// type, and caps the list. The new entry is returned even if it could not be stored.
func (s *Service) Save(ctx context.Context, in SearchInput) Search {
	entry := Search{
		ID:          s.newID(),
		Airport:     in.Airport,
		AirportName: in.AirportName,
		TripType:    in.TripType,
		LeaveTime:   in.LeaveTime.UTC(),
		FlightTime:  in.FlightTime.UTC(),
		CreatedAt:   s.clock().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load(ctx)
	if err != nil {
		// A corrupt document is replaced; an unreachable store is left alone.
		if !errors.Is(err, ErrCorruptData) {
			s.logger.Error().Err(err).Str("airport", in.Airport).Msg("failed to save recent search")
			return entry
		}
		s.logger.Warn().Err(err).Msg("discarding unreadable recent searches")
		existing = nil
	}

	updated := make([]Search, 0, s.max)
	updated = append(updated, entry)
	for _, e := range existing {
		if len(updated) == s.max {
			break
		}
		if e.sameTrip(in) {
			continue
		}
		updated = append(updated, e)
	}

	if err := s.run(ctx, func(ctx context.Context) error {
		return s.repo.Store(ctx, updated)
	}); err != nil {
		s.logger.Error().Err(err).Str("airport", in.Airport).Msg("failed to save recent search")
	}

	return entry
}

// List returns the stored searches, newest first. Storage faults yield an empty list.
func (s *Service) List(ctx context.Context) []Search {
	searches, err := s.load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load recent searches")
		return []Search{}
	}
	return searches
}

// Clear removes every stored search.
func (s *Service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.run(ctx, s.repo.Clear); err != nil {
		s.logger.Error().Err(err).Msg("failed to clear recent searches")
	}
}

// Ping reports whether the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *Service) load(ctx context.Context) ([]Search, error) {
	var searches []Search
	err := s.run(ctx, func(ctx context.Context) error {
		loaded, err := s.repo.Load(ctx)
		if errors.Is(err, ErrCorruptData) {
			return resilience.Permanent(err)
		}
		searches = loaded
		return err
	})
	return searches, err
}

func (s *Service) run(ctx context.Context, op func(context.Context) error) error {
	if s.guard == nil {
		return op(ctx)
	}
	return s.guard.Do(ctx, op)
}
