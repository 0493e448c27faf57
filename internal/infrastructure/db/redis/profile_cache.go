package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/medichain/identity-service/internal/api/metrics"
	"github.com/medichain/identity-service/internal/core/ports"
)

const defaultProfileTTL = 5 * time.Minute

// ProfileCache stores profile views as JSON under profile:<username>.
// Entries expire after the configured TTL and are deleted eagerly on
// any mutation of the underlying account.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

// Get returns (nil, nil) on a cache miss.
func (c *ProfileCache) Get(ctx context.Context, username string) (*ports.ProfileView, error) {
	raw, err := c.client.Get(ctx, c.key(username)).Bytes()
	if err == redis.Nil {
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var view ports.ProfileView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}

	metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()
	return &view, nil
}

func (c *ProfileCache) Set(ctx context.Context, view ports.ProfileView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(view.Username), raw, c.ttl).Err()
}

func (c *ProfileCache) Invalidate(ctx context.Context, username string) error {
	return c.client.Del(ctx, c.key(username)).Err()
}

func (c *ProfileCache) key(username string) string {
	return "profile:" + username
}
