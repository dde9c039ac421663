package recent

import (
	"context"
	"encoding/json"
	"fmt"
)

// Repository persists the recent search list as a single JSON document.
type Repository interface {
	// Load returns the stored list, or an empty list when nothing is stored.
	// Returns ErrCorruptData when the stored document cannot be decoded.
	Load(ctx context.Context) ([]Search, error)

	// Store replaces the stored list.
	Store(ctx context.Context, searches []Search) error

	// Clear removes the stored list.
	Clear(ctx context.Context) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}

func encode(searches []Search) ([]byte, error) {
	if searches == nil {
		searches = []Search{}
	}
	data, err := json.Marshal(searches)
	if err != nil {
		return nil, fmt.Errorf("encode recent searches: %w", err)
	}
	return data, nil
}

func decode(data []byte) ([]Search, error) {
	if len(data) == 0 {
		return []Search{}, nil
	}
	var searches []Search
	if err := json.Unmarshal(data, &searches); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if searches == nil {
		searches = []Search{}
	}
	return searches, nil
}
