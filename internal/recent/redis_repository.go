package recent

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRepository stores the list as a JSON string value in Redis.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a Redis repository.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// Load returns the stored list.
func (r *RedisRepository) Load(ctx context.Context) ([]Search, error) {
	data, err := r.client.Get(ctx, StorageKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []Search{}, nil
		}
		return nil, fmt.Errorf("load recent searches: %w", err)
	}
	return decode(data)
}

// Store replaces the stored list. The key never expires.
func (r *RedisRepository) Store(ctx context.Context, searches []Search) error {
	data, err := encode(searches)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, StorageKey, data, 0).Err(); err != nil {
		return fmt.Errorf("store recent searches: %w", err)
	}
	return nil
}

// Clear removes the stored list.
func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, StorageKey).Err(); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

var _ Repository = (*RedisRepository)(nil)
