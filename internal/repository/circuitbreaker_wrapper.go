package repository

import (
	"context"

	"github.com/guttosm/taxi-data-service/internal/circuitbreaker"
	"github.com/guttosm/taxi-data-service/internal/domain/model"
)

// TripRepositoryWithCircuitBreaker wraps a trip repository with circuit
// breaker protection. When the circuit is open, store errors surface
// immediately instead of piling up on an unreachable database.
type TripRepositoryWithCircuitBreaker struct {
	repo           TripRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewTripRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewTripRepositoryWithCircuitBreaker(repo TripRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *TripRepositoryWithCircuitBreaker {
	return &TripRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Get returns the trip with the given id with circuit breaker protection.
func (r *TripRepositoryWithCircuitBreaker) Get(ctx context.Context, id int64) (*model.TaxiTrip, error) {
	var result *model.TaxiTrip
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Get(ctx, id)
		return cbErr
	})
	return result, err
}

// List returns paginated trips with circuit breaker protection.
func (r *TripRepositoryWithCircuitBreaker) List(ctx context.Context, offset, limit int) ([]model.TaxiTrip, error) {
	var result []model.TaxiTrip
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.List(ctx, offset, limit)
		return cbErr
	})
	return result, err
}

// Insert stores a new trip with circuit breaker protection.
func (r *TripRepositoryWithCircuitBreaker) Insert(ctx context.Context, data model.TripCreate) (*model.TaxiTrip, error) {
	var result *model.TaxiTrip
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Insert(ctx, data)
		return cbErr
	})
	return result, err
}

// Update applies a partial update with circuit breaker protection.
func (r *TripRepositoryWithCircuitBreaker) Update(ctx context.Context, id int64, patch model.TripPatch) (*model.TaxiTrip, error) {
	var result *model.TaxiTrip
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Update(ctx, id, patch)
		return cbErr
	})
	return result, err
}

// Delete removes a trip with circuit breaker protection.
func (r *TripRepositoryWithCircuitBreaker) Delete(ctx context.Context, id int64) (*model.TaxiTrip, error) {
	var result *model.TaxiTrip
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Delete(ctx, id)
		return cbErr
	})
	return result, err
}

// AggregateByPassengerCount runs the aggregation with circuit breaker protection.
func (r *TripRepositoryWithCircuitBreaker) AggregateByPassengerCount(ctx context.Context) ([]model.PassengerStat, error) {
	var result []model.PassengerStat
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.AggregateByPassengerCount(ctx)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *TripRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
