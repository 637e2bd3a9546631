package repository

import (
	"context"

	"github.com/guttosm/taxi-data-service/internal/domain/model"
)

// TripRepositoryInterface defines the contract for trip persistence.
// Absence of a row by id is not an error: Get, Update, and Delete return
// (nil, nil) for a missing id, distinguished from true errors such as
// connectivity failures.
type TripRepositoryInterface interface {
	Get(ctx context.Context, id int64) (*model.TaxiTrip, error)
	List(ctx context.Context, offset, limit int) ([]model.TaxiTrip, error)
	Insert(ctx context.Context, data model.TripCreate) (*model.TaxiTrip, error)
	Update(ctx context.Context, id int64, patch model.TripPatch) (*model.TaxiTrip, error)
	Delete(ctx context.Context, id int64) (*model.TaxiTrip, error)
	AggregateByPassengerCount(ctx context.Context) ([]model.PassengerStat, error)
}

// TripLoaderInterface defines the bulk-load contract used by the batch loader.
type TripLoaderInterface interface {
	TableExists(ctx context.Context) (bool, error)
	EnsureSchema(ctx context.Context) error
	Truncate(ctx context.Context) error
	AppendBatch(ctx context.Context, rows []model.TripImport) error
}
