package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/taxi-data-service/internal/domain/model"
	"github.com/guttosm/taxi-data-service/internal/metrics"
)

// createTableSQL is the declared schema for the trips table.
const createTableSQL = `
CREATE TABLE IF NOT EXISTS taxi_trips (
	id              BIGSERIAL PRIMARY KEY,
	vendor_id       BIGINT,
	pickup_datetime TIMESTAMP,
	passenger_count BIGINT,
	trip_distance   DOUBLE PRECISION
)`

var createIndexSQL = []string{
	"CREATE INDEX IF NOT EXISTS idx_taxi_trips_vendor_id ON taxi_trips (vendor_id)",
	"CREATE INDEX IF NOT EXISTS idx_taxi_trips_pickup_datetime ON taxi_trips (pickup_datetime)",
}

// TableExists reports whether the taxi_trips table is present.
func (r *TripRepository) TableExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = current_schema() AND table_name = 'taxi_trips'
		)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check taxi_trips table: %w", err)
	}
	return exists, nil
}

// EnsureSchema creates the taxi_trips table and its indexes if missing.
func (r *TripRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create taxi_trips table: %w", err)
	}
	for _, stmt := range createIndexSQL {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create taxi_trips index: %w", err)
		}
	}
	return nil
}

// Truncate removes all rows from taxi_trips. The id sequence is not reset,
// so a reload reproduces row counts but not ids.
func (r *TripRepository) Truncate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "TRUNCATE TABLE taxi_trips"); err != nil {
		return fmt.Errorf("truncate taxi_trips: %w", err)
	}
	return nil
}

// AppendBatch bulk-inserts loader rows with a single multi-row INSERT.
// Callers bound the batch size; at 4 parameters per row the loader's 10k
// chunks stay well under the PostgreSQL 65535 bind-parameter limit.
func (r *TripRepository) AppendBatch(ctx context.Context, rows []model.TripImport) error {
	if len(rows) == 0 {
		return nil
	}

	start := time.Now()
	defer func() { metrics.RecordStoreQuery("append_batch", time.Since(start)) }()

	var sb strings.Builder
	sb.WriteString("INSERT INTO taxi_trips (vendor_id, pickup_datetime, passenger_count, trip_distance) VALUES ")
	args := make([]any, 0, len(rows)*4)
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte(',')
		}
		n := i * 4
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d)", n+1, n+2, n+3, n+4)
		args = append(args, row.VendorID, row.PickupDatetime, row.PassengerCount, row.TripDistance)
	}

	if _, err := r.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("append %d trips: %w", len(rows), err)
	}
	return nil
}
