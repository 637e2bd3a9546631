//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/taxi-data-service/internal/domain/model"
	"github.com/guttosm/taxi-data-service/internal/testutil"
)

func setupIntegrationRepo(t *testing.T) *TripRepository {
	t.Helper()
	url := testutil.StartPostgres(t)

	pg, err := NewPostgres(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Close() })

	repo := NewTripRepository(pg)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestTripRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := setupIntegrationRepo(t)
	pickup := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	t.Run("full crud round trip", func(t *testing.T) {
		count := int64(2)
		distance := 3.4
		created, err := repo.Insert(ctx, model.TripCreate{
			VendorID:       1,
			PickupDatetime: pickup,
			PassengerCount: &count,
			TripDistance:   &distance,
		})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		got, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, int64(1), got.VendorID)
		assert.True(t, pickup.Equal(*got.PickupDatetime))

		newDistance := 9.9
		updated, err := repo.Update(ctx, created.ID, model.TripPatch{TripDistance: &newDistance})
		require.NoError(t, err)
		assert.Equal(t, 9.9, *updated.TripDistance)
		assert.Equal(t, int64(2), *updated.PassengerCount, "untouched fields keep their values")

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, deleted.ID)

		gone, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)
	})

	t.Run("aggregation groups and orders", func(t *testing.T) {
		require.NoError(t, repo.Truncate(ctx))
		rows := []model.TripImport{
			{VendorID: 1, PickupDatetime: &pickup, PassengerCount: 2, TripDistance: 4.0},
			{VendorID: 1, PickupDatetime: &pickup, PassengerCount: 2, TripDistance: 6.0},
			{VendorID: 2, PickupDatetime: &pickup, PassengerCount: 1, TripDistance: 1.0},
		}
		require.NoError(t, repo.AppendBatch(ctx, rows))

		stats, err := repo.AggregateByPassengerCount(ctx)
		require.NoError(t, err)
		require.Len(t, stats, 2)
		assert.Equal(t, int64(1), stats[0].PassengerCount)
		assert.Equal(t, 1.0, stats[0].AverageDistance)
		assert.Equal(t, int64(2), stats[1].PassengerCount)
		assert.Equal(t, 5.0, stats[1].AverageDistance)
	})

	t.Run("truncate keeps the table usable", func(t *testing.T) {
		require.NoError(t, repo.Truncate(ctx))

		exists, err := repo.TableExists(ctx)
		require.NoError(t, err)
		assert.True(t, exists)

		trips, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, trips)
	})
}
