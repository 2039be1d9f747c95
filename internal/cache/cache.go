// Package cache wraps redis with JSON helpers. A nil client turns every
// call into a miss, so services work without redis in tests and dev.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	KeyDashboard  = "admin:dashboard"
	KeyCategories = "catalog:categories"

	DashboardTTL  = 5 * time.Minute
	CategoriesTTL = time.Hour
)

type Cache struct {
	redis *redis.Client
}

func New(client *redis.Client) *Cache {
	return &Cache{redis: client}
}

// GetJSON reports whether key was present and decoded into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.redis == nil {
		return false
	}
	cached, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(cached), dest) == nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.redis.Set(ctx, key, data, ttl)
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.redis == nil || len(keys) == 0 {
		return
	}
	c.redis.Del(ctx, keys...)
}
