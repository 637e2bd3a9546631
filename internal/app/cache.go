// Package app provides cache initialization.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/taxi-data-service/config"
	"github.com/guttosm/taxi-data-service/internal/cache"
)

// InitializeCache connects to Redis. When Redis is unreachable the service
// falls back to an in-process cache so reads still work; the fallback is
// per-instance and loses invalidation across replicas, so the warning it
// logs should be treated as an operational alarm rather than noise.
func InitializeCache(cfg config.CacheConfig) cache.Cache {
	c, err := cache.NewRedis(cache.RedisConfig{
		Host:        cfg.Host,
		Port:        cfg.Port,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, falling back to in-process cache")
		return cache.NewMemory()
	}
	log.Info().Str("host", cfg.Host).Int("port", cfg.Port).Msg("Connected to Redis")
	return c
}
