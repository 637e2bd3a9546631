package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/taxi-data-service/internal/domain/model"
	"github.com/guttosm/taxi-data-service/internal/metrics"
)

// tripColumns is the canonical select list for taxi_trips.
const tripColumns = "id, vendor_id, pickup_datetime, passenger_count, trip_distance"

// tripRow mirrors one taxi_trips row. All data columns are nullable because
// the batch loader may store NULL for values that failed coercion.
type tripRow struct {
	ID             int64
	VendorID       sql.NullInt64
	PickupDatetime sql.NullTime
	PassengerCount sql.NullInt64
	TripDistance   sql.NullFloat64
}

// toModel converts a scanned row to the domain record. NULL vendor_id maps
// to 0; the optional fields keep their absence as nil pointers.
func (r tripRow) toModel() *model.TaxiTrip {
	trip := &model.TaxiTrip{
		ID:       r.ID,
		VendorID: r.VendorID.Int64,
	}
	if r.PickupDatetime.Valid {
		t := r.PickupDatetime.Time
		trip.PickupDatetime = &t
	}
	if r.PassengerCount.Valid {
		n := r.PassengerCount.Int64
		trip.PassengerCount = &n
	}
	if r.TripDistance.Valid {
		d := r.TripDistance.Float64
		trip.TripDistance = &d
	}
	return trip
}

// scanTrip scans a single row from any row scanner (sql.Row or sql.Rows).
func scanTrip(scan func(dest ...any) error) (*model.TaxiTrip, error) {
	var row tripRow
	if err := scan(&row.ID, &row.VendorID, &row.PickupDatetime, &row.PassengerCount, &row.TripDistance); err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// TripRepository provides CRUD, aggregation, and bulk-load access to the
// taxi_trips table. Row absence is reported as (nil, nil), never as an error.
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository.
func NewTripRepository(pg *Postgres) *TripRepository {
	return &TripRepository{db: pg.DB}
}

// Get returns the trip with the given id, or (nil, nil) when absent.
func (r *TripRepository) Get(ctx context.Context, id int64) (*model.TaxiTrip, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQuery("get", time.Since(start)) }()

	row := r.db.QueryRowContext(ctx,
		"SELECT "+tripColumns+" FROM taxi_trips WHERE id = $1", id)
	trip, err := scanTrip(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", id, err)
	}
	return trip, nil
}

// List returns trips in primary-key order using skip/take pagination.
func (r *TripRepository) List(ctx context.Context, offset, limit int) ([]model.TaxiTrip, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQuery("list", time.Since(start)) }()

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+tripColumns+" FROM taxi_trips ORDER BY id OFFSET $1 LIMIT $2", offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	trips := make([]model.TaxiTrip, 0, limit)
	for rows.Next() {
		trip, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan trip: %w", err)
		}
		trips = append(trips, *trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

// Insert stores a new trip and returns the created record with its
// store-assigned id.
func (r *TripRepository) Insert(ctx context.Context, data model.TripCreate) (*model.TaxiTrip, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQuery("insert", time.Since(start)) }()

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO taxi_trips (vendor_id, pickup_datetime, passenger_count, trip_distance)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+tripColumns,
		data.VendorID, data.PickupDatetime, data.PassengerCount, data.TripDistance)
	trip, err := scanTrip(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("insert trip: %w", err)
	}
	return trip, nil
}

// Update applies a partial update and returns the updated record, or
// (nil, nil) when the id is absent. Nil patch fields leave the stored values
// untouched. An empty patch reads the current record back unchanged.
func (r *TripRepository) Update(ctx context.Context, id int64, patch model.TripPatch) (*model.TaxiTrip, error) {
	if patch.IsEmpty() {
		return r.Get(ctx, id)
	}

	start := time.Now()
	defer func() { metrics.RecordStoreQuery("update", time.Since(start)) }()

	assignments := make([]string, 0, 4)
	args := make([]any, 0, 5)
	add := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.VendorID != nil {
		add("vendor_id", *patch.VendorID)
	}
	if patch.PickupDatetime != nil {
		add("pickup_datetime", *patch.PickupDatetime)
	}
	if patch.PassengerCount != nil {
		add("passenger_count", *patch.PassengerCount)
	}
	if patch.TripDistance != nil {
		add("trip_distance", *patch.TripDistance)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE taxi_trips SET %s WHERE id = $%d RETURNING %s",
		strings.Join(assignments, ", "), len(args), tripColumns)

	row := r.db.QueryRowContext(ctx, query, args...)
	trip, err := scanTrip(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update trip %d: %w", id, err)
	}
	return trip, nil
}

// Delete removes the trip with the given id and returns the deleted record,
// or (nil, nil) when absent.
func (r *TripRepository) Delete(ctx context.Context, id int64) (*model.TaxiTrip, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQuery("delete", time.Since(start)) }()

	row := r.db.QueryRowContext(ctx,
		"DELETE FROM taxi_trips WHERE id = $1 RETURNING "+tripColumns, id)
	trip, err := scanTrip(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete trip %d: %w", id, err)
	}
	return trip, nil
}

// AggregateByPassengerCount computes the mean trip distance per passenger
// count over all trips, ordered ascending. NULL passenger counts group as 0
// and a NULL average maps to 0.0, so callers and the cache always see a
// uniform shape.
func (r *TripRepository) AggregateByPassengerCount(ctx context.Context) ([]model.PassengerStat, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQuery("aggregate_passenger_count", time.Since(start)) }()

	rows, err := r.db.QueryContext(ctx,
		`SELECT passenger_count, AVG(trip_distance) AS average_distance
		 FROM taxi_trips
		 GROUP BY passenger_count
		 ORDER BY passenger_count`)
	if err != nil {
		return nil, fmt.Errorf("aggregate by passenger count: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var stats []model.PassengerStat
	for rows.Next() {
		var count sql.NullInt64
		var avg sql.NullFloat64
		if err := rows.Scan(&count, &avg); err != nil {
			return nil, fmt.Errorf("scan passenger stat: %w", err)
		}
		stats = append(stats, model.PassengerStat{
			PassengerCount:  count.Int64,
			AverageDistance: avg.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("aggregate by passenger count: %w", err)
	}
	return stats, nil
}
