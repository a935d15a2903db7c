// Package profile serves the public-safe projection of identity records
// and the profile images that go with them.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/artiklar/identity-api/internal/user"
)

// Cache is the read-through cache for safe profile views. Entries expire on
// their own; deletes invalidate by public id.
type Cache interface {
	Get(ctx context.Context, publicID string) (*user.SafeProfile, bool, error)
	Set(ctx context.Context, profile user.SafeProfile) error
	Invalidate(ctx context.Context, publicID string) error
}

// RedisCache stores safe profile views as JSON under profile:<public_id>.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func profileKey(publicID string) string {
	return fmt.Sprintf("profile:%s", publicID)
}

func (c *RedisCache) Get(ctx context.Context, publicID string) (*user.SafeProfile, bool, error) {
	data, err := c.client.Get(ctx, profileKey(publicID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached profile: %w", err)
	}

	var profile user.SafeProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, nil
	}
	return &profile, true, nil
}

func (c *RedisCache) Set(ctx context.Context, profile user.SafeProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := c.client.Set(ctx, profileKey(profile.PublicID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context, publicID string) error {
	if err := c.client.Del(ctx, profileKey(publicID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached profile: %w", err)
	}
	return nil
}
