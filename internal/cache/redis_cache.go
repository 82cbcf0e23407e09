package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in redis with native key expiry
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache wraps an existing client; every key is namespaced by prefix
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get returns (nil, false, nil) on a miss
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.prefix+key, string(value), ttl).Err()
}

func (r *RedisCache) Invalidate(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}
