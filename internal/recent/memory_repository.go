package recent

import (
	"context"
	"sync"
)

// InMemoryRepository keeps the encoded list in process memory.
// Contents are lost on restart.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items: make(map[string][]byte),
	}
}

// Load returns the stored list.
func (r *InMemoryRepository) Load(_ context.Context) ([]Search, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return decode(r.items[StorageKey])
}

// Store replaces the stored list.
func (r *InMemoryRepository) Store(_ context.Context, searches []Search) error {
	data, err := encode(searches)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[StorageKey] = data
	return nil
}

// Clear removes the stored list.
func (r *InMemoryRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, StorageKey)
	return nil
}

// Ping always succeeds.
func (r *InMemoryRepository) Ping(_ context.Context) error {
	return nil
}

var _ Repository = (*InMemoryRepository)(nil)
