package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
)

// Redis is a Store backed by a go-redis client.
type Redis struct {
	C *redis.Client
}

// Connect creates the client and verifies it with a ping so the caller can
// fall back to Memory when Redis is unavailable.
func Connect(ctx context.Context, addr, password string) (*Redis, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return &Redis{C: c}, nil
}

func (r *Redis) Close() error {
	return r.C.Close()
}

func (r *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := r.C.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.WithLabelValues("redis").Inc()
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	metrics.CacheHits.WithLabelValues("redis").Inc()
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.C.Set(ctx, key, data, ttl).Err()
}

func (r *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.C.Del(ctx, keys...).Err()
}
