// Package quota provides Redis-backed request throttling counters for
// the HTTP shell. It holds no caption data: converted results are never
// cached or persisted, only per-client counters with expiry.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store provides rate and quota counters backed by Redis
type Store struct {
	client *redis.Client
}

// New creates a new quota store
func New(host string, port int, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: client}, nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Allow checks a sliding-window counter for a key: the counter is
// incremented and the call reports whether it is still within limit.
// The expiry starts on the window's first request.
func (s *Store) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	counterKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := s.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, counterKey, window).Err(); err != nil {
			return false, fmt.Errorf("failed to set expiry: %w", err)
		}
	}

	return count <= limit, nil
}

// Used returns how many requests a key has made in its current window.
func (s *Store) Used(ctx context.Context, key string) (int64, error) {
	counterKey := fmt.Sprintf("ratelimit:%s", key)
	count, err := s.client.Get(ctx, counterKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read rate limit counter: %w", err)
	}
	return count, nil
}

// Reset clears the counter for a key.
func (s *Store) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, fmt.Sprintf("ratelimit:%s", key)).Err()
}

// Ping checks connectivity for health endpoints.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
