package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// sysConfigPrefix namespaces cached system configuration entries.
const sysConfigPrefix = "sys_config:"

// ConfigCache serves system configuration flags out of redis. The flags are
// warmed from the database at startup and read on hot paths like login.
type ConfigCache struct {
	rdb *redis.Client
}

// NewConfigCache creates a ConfigCache over the given client
func NewConfigCache(rdb *redis.Client) *ConfigCache {
	return &ConfigCache{rdb: rdb}
}

// GetFlag returns the cached value for a config key, or "" when not cached.
func (c *ConfigCache) GetFlag(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, sysConfigPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("config get %s: %w", key, err)
	}
	return val, nil
}

// Warm replaces the cached config entries with the given set. Entries carry
// no TTL; they live until the next warm.
func (c *ConfigCache) Warm(ctx context.Context, entries map[string]string) error {
	pipe := c.rdb.Pipeline()
	for key, value := range entries {
		pipe.Set(ctx, sysConfigPrefix+key, value, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("config warm: %w", err)
	}
	return nil
}
