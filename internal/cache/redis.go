package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/guttosm/taxi-data-service/internal/metrics"
)

// Redis implements Cache on top of a Redis server.
type Redis struct {
	client *redis.Client
}

// RedisConfig holds Redis client configuration.
type RedisConfig struct {
	Host        string
	Port        int
	DialTimeout time.Duration
}

// NewRedis creates a Redis cache and verifies connectivity with a ping.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{client: client}, nil
}

// Get returns the value for key, or (nil, nil) on a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheOperation("get", "miss")
		return nil, nil
	}
	if err != nil {
		metrics.RecordCacheOperation("get", "error")
		return nil, err
	}
	metrics.RecordCacheOperation("get", "hit")
	return data, nil
}

// Set stores value under key with the given TTL.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		metrics.RecordCacheOperation("set", "error")
		return err
	}
	metrics.RecordCacheOperation("set", "success")
	return nil
}

// Del removes the given keys. Absent keys are ignored.
func (r *Redis) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		metrics.RecordCacheOperation("delete", "error")
		return err
	}
	metrics.RecordCacheOperation("delete", "success")
	return nil
}

// Ping verifies the Redis server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
