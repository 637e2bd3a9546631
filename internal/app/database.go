// Package app provides database initialization and setup.
package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/taxi-data-service/config"
	"github.com/guttosm/taxi-data-service/internal/circuitbreaker"
	"github.com/guttosm/taxi-data-service/internal/repository"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	Postgres           *repository.Postgres
	TripRepo           repository.TripRepositoryInterface
	TripCircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to PostgreSQL and builds the trip repository,
// wrapped in a circuit breaker. The connection is mandatory: the API cannot
// serve anything without the store, so failure here is fatal to the caller.
func InitializeDatabase(cfg config.DatabaseConfig) (*DatabaseComponents, error) {
	pg, err := repository.NewPostgresWithConfig(cfg.URL, repository.PostgresConfig{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		ConnectTimeout:  cfg.ConnectTimeout,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Msg("Connected to PostgreSQL")

	tripCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "postgres-trips",
	})

	tripRepo := repository.NewTripRepository(pg)
	tripRepoWithCB := repository.NewTripRepositoryWithCircuitBreaker(tripRepo, tripCB)

	return &DatabaseComponents{
		Postgres:           pg,
		TripRepo:           tripRepoWithCB,
		TripCircuitBreaker: tripCB,
	}, nil
}
