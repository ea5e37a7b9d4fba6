package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps issued tokens in redis under TTL'd string keys. Callers
// choose the full key; the store does not interpret it. An absent key is a
// normal outcome ("", nil); every returned error is a transport or command
// failure and must not be read as "session absent".
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore creates a SessionStore over the given client
func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Set inserts or overwrites a token under key with the given TTL
func (s *SessionStore) Set(ctx context.Context, key, token string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, token, ttl).Err(); err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	return nil
}

// Get returns the token stored under key, or "" when the key is absent
// or already evicted.
func (s *SessionStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session get %s: %w", key, err)
	}
	return val, nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *SessionStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("session delete %s: %w", key, err)
	}
	return nil
}
