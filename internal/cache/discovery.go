package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillloop/skillloop-backend/internal/logger"
	"github.com/skillloop/skillloop-backend/internal/utils"
)

// DiscoveryCache keeps serialized discovery pages in redis for a short
// TTL. The feed tolerates slightly stale ordering, so there is no
// explicit invalidation: entries simply age out.
type DiscoveryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewDiscoveryCache(client *redis.Client, ttl time.Duration, baseLog *logger.Logger) *DiscoveryCache {
	return &DiscoveryCache{
		client: client,
		ttl:    ttl,
		log:    baseLog.With("component", "DiscoveryCache"),
	}
}

// NewRedisClient builds a client from the environment. Returns nil when
// no redis host is configured; callers treat a nil cache as disabled.
func NewRedisClient() *redis.Client {
	host := utils.GetEnv("REDIS_HOST", "")
	if host == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, utils.GetEnvAsInt("REDIS_PORT", 6379)),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       utils.GetEnvAsInt("REDIS_DB", 0),
	})
}

func PageKey(view string, page, size int) string {
	return fmt.Sprintf("discover:%s:p%d:s%d", view, page, size)
}

// Get returns the cached payload, or (nil, false) on a miss. Redis
// errors degrade to a miss so the database path still serves.
func (c *DiscoveryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("cache read failed", "error", err, "key", key)
		}
		return nil, false
	}
	return payload, true
}

func (c *DiscoveryCache) Set(ctx context.Context, key string, payload []byte) {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn("cache write failed", "error", err, "key", key)
	}
}
