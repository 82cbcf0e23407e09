// Package cache is the read-through cache used by the acquisition layer.
// Values are opaque bytes with a per-entry TTL.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Cache is an explicit cache object with TTL and explicit invalidation.
type Cache interface {
	// Get returns the value and true on a fresh hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

var (
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*RedisCache)(nil)
)

// New returns a RedisCache when addr is set and reachable, else a MemoryCache.
func New(ctx context.Context, addr string) Cache {
	if addr == "" {
		log.Info("Using in-memory cache")
		return NewMemoryCache()
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warnf("Redis at %s unreachable (%v), falling back to in-memory cache", addr, err)
		client.Close()
		return NewMemoryCache()
	}

	log.Infof("Using redis cache at %s", addr)
	return NewRedisCache(client, "tracker:")
}
