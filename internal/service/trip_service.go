package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/taxi-data-service/internal/cache"
	"github.com/guttosm/taxi-data-service/internal/domain/model"
	"github.com/guttosm/taxi-data-service/internal/repository"
)

const (
	// DefaultTripTTL bounds staleness of a cached single-trip entry.
	DefaultTripTTL = 300 * time.Second
	// DefaultStatsTTL bounds staleness of the cached aggregation, which is
	// never invalidated by trip mutations.
	DefaultStatsTTL = 600 * time.Second
)

// TripService provides CRUD and aggregation over trip records with a
// cache-aside layer. Mutations invalidate the single-trip cache key
// synchronously; the aggregation cache only self-heals via TTL.
type TripService interface {
	CreateTrip(ctx context.Context, data model.TripCreate) (*model.TaxiTrip, error)
	GetTrip(ctx context.Context, id int64) (*model.TaxiTrip, error)
	ListTrips(ctx context.Context, skip, limit int) ([]model.TaxiTrip, error)
	UpdateTrip(ctx context.Context, id int64, patch model.TripPatch) (*model.TaxiTrip, error)
	DeleteTrip(ctx context.Context, id int64) (*model.TaxiTrip, error)
	PassengerStats(ctx context.Context) ([]model.PassengerStat, error)
}

// TripServiceImpl implements TripService.
type TripServiceImpl struct {
	repo     repository.TripRepositoryInterface
	cache    cache.Cache
	tripTTL  time.Duration
	statsTTL time.Duration
}

// Option configures a TripServiceImpl.
type Option func(*TripServiceImpl)

// WithTripTTL overrides the single-trip cache TTL.
func WithTripTTL(ttl time.Duration) Option {
	return func(s *TripServiceImpl) { s.tripTTL = ttl }
}

// WithStatsTTL overrides the aggregation cache TTL.
func WithStatsTTL(ttl time.Duration) Option {
	return func(s *TripServiceImpl) { s.statsTTL = ttl }
}

// NewTripService creates a new trip service over the given store and cache.
func NewTripService(repo repository.TripRepositoryInterface, c cache.Cache, opts ...Option) *TripServiceImpl {
	s := &TripServiceImpl{
		repo:     repo,
		cache:    c,
		tripTTL:  DefaultTripTTL,
		statsTTL: DefaultStatsTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateTrip validates nothing here (the DTO layer already has) and inserts
// the record. There is no cache interaction: a not-yet-cached id has nothing
// to invalidate.
func (s *TripServiceImpl) CreateTrip(ctx context.Context, data model.TripCreate) (*model.TaxiTrip, error) {
	return s.repo.Insert(ctx, data)
}

// GetTrip serves the trip from cache when present, otherwise reads the store
// and populates the cache. A stale-but-unexpired cache entry is served as
// truth; the staleness window is bounded by the TTL. Cache failures on this
// path degrade to a miss so an unreachable cache never fails reads.
func (s *TripServiceImpl) GetTrip(ctx context.Context, id int64) (*model.TaxiTrip, error) {
	key := cache.TripKey(id)

	if data, err := s.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling back to store")
	} else if data != nil {
		var trip model.TaxiTrip
		if err := json.Unmarshal(data, &trip); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		} else {
			return &trip, nil
		}
	}

	trip, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	if data, err := json.Marshal(trip); err == nil {
		if err := s.cache.Set(ctx, key, data, s.tripTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache populate failed")
		}
	}
	return trip, nil
}

// ListTrips returns a page of trips in insertion order. The list is never
// cached.
func (s *TripServiceImpl) ListTrips(ctx context.Context, skip, limit int) ([]model.TaxiTrip, error) {
	return s.repo.List(ctx, skip, limit)
}

// UpdateTrip applies a partial update and synchronously invalidates the
// trip's cache key. The key is deleted unconditionally, even when no entry
// existed, and the new value is never written back here: the next read
// refetches it fresh, avoiding any race between the store write and cache
// serialization. An invalidation failure is surfaced because silently
// keeping the old entry would serve pre-mutation data for up to a TTL.
func (s *TripServiceImpl) UpdateTrip(ctx context.Context, id int64, patch model.TripPatch) (*model.TaxiTrip, error) {
	trip, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	if err := s.cache.Del(ctx, cache.TripKey(id)); err != nil {
		return nil, fmt.Errorf("invalidate trip %d after update: %w", id, err)
	}
	return trip, nil
}

// DeleteTrip removes the trip and synchronously invalidates its cache key.
// Same invalidation rules as UpdateTrip.
func (s *TripServiceImpl) DeleteTrip(ctx context.Context, id int64) (*model.TaxiTrip, error) {
	trip, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	if err := s.cache.Del(ctx, cache.TripKey(id)); err != nil {
		return nil, fmt.Errorf("invalidate trip %d after delete: %w", id, err)
	}
	return trip, nil
}

// PassengerStats serves the by-passenger-count aggregation cache-aside. On a
// miss the full aggregation runs against the store and the normalized result
// is cached for the stats TTL. Trip mutations deliberately do not invalidate
// this key: the aggregation is expensive, and serving it up to statsTTL
// stale is the accepted trade-off.
func (s *TripServiceImpl) PassengerStats(ctx context.Context) ([]model.PassengerStat, error) {
	if data, err := s.cache.Get(ctx, cache.StatsKey); err != nil {
		log.Warn().Err(err).Str("key", cache.StatsKey).Msg("Cache read failed, falling back to store")
	} else if data != nil {
		var stats []model.PassengerStat
		if err := json.Unmarshal(data, &stats); err != nil {
			log.Warn().Err(err).Str("key", cache.StatsKey).Msg("Discarding undecodable cache entry")
		} else {
			return stats, nil
		}
	}

	stats, err := s.repo.AggregateByPassengerCount(ctx)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []model.PassengerStat{}
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.cache.Set(ctx, cache.StatsKey, data, s.statsTTL); err != nil {
			log.Warn().Err(err).Str("key", cache.StatsKey).Msg("Cache populate failed")
		}
	}
	return stats, nil
}
