package loader

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/taxi-data-service/internal/domain/model"
)

// sourceRow mirrors the raw column layout of the upstream trip files.
type sourceRow struct {
	VendorID       int64     `parquet:"VendorID"`
	Pickup         time.Time `parquet:"tpep_pickup_datetime,timestamp"`
	PassengerCount float64   `parquet:"passenger_count"`
	TripDistance   float64   `parquet:"trip_distance"`
}

// unrelatedRow has none of the mapped columns.
type unrelatedRow struct {
	Name  string `parquet:"name"`
	Value int64  `parquet:"value"`
}

func writeParquet[T any](t *testing.T, path string, rows []T) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := parquet.NewGenericWriter[T](f)
	_, err = w.Write(rows)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func sampleRows(n int) []sourceRow {
	pickup := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
	rows := make([]sourceRow, n)
	for i := range rows {
		rows[i] = sourceRow{
			VendorID:       int64(i%2 + 1),
			Pickup:         pickup.Add(time.Duration(i) * time.Minute),
			PassengerCount: float64(i % 4),
			TripDistance:   float64(i) * 1.5,
		}
	}
	return rows
}

// fakeLoaderRepo records schema and append calls in memory.
type fakeLoaderRepo struct {
	exists    bool
	truncated int
	ensured   int
	batches   [][]model.TripImport
	appendErr error
}

func (f *fakeLoaderRepo) TableExists(context.Context) (bool, error) { return f.exists, nil }
func (f *fakeLoaderRepo) EnsureSchema(context.Context) error {
	f.ensured++
	return nil
}
func (f *fakeLoaderRepo) Truncate(context.Context) error {
	f.truncated++
	return nil
}
func (f *fakeLoaderRepo) AppendBatch(_ context.Context, rows []model.TripImport) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.batches = append(f.batches, rows)
	return nil
}

func (f *fakeLoaderRepo) totalRows() int {
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("empty directory is a configuration error", func(t *testing.T) {
		repo := &fakeLoaderRepo{}
		l := New(repo, t.TempDir(), 100)

		_, err := l.Run(ctx)
		assert.ErrorIs(t, err, ErrNoSourceFiles)
		assert.Zero(t, repo.truncated)
		assert.Zero(t, repo.ensured)
	})

	t.Run("creates the table when missing", func(t *testing.T) {
		dir := t.TempDir()
		writeParquet(t, filepath.Join(dir, "trips.parquet"), sampleRows(3))
		repo := &fakeLoaderRepo{exists: false}
		l := New(repo, dir, 100)

		summary, err := l.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, repo.truncated)
		assert.Equal(t, 1, repo.ensured)
		assert.Equal(t, 1, summary.FilesLoaded)
		assert.Equal(t, int64(3), summary.RowsLoaded)
	})

	t.Run("truncates the table when present", func(t *testing.T) {
		dir := t.TempDir()
		writeParquet(t, filepath.Join(dir, "trips.parquet"), sampleRows(2))
		repo := &fakeLoaderRepo{exists: true}
		l := New(repo, dir, 100)

		_, err := l.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, repo.truncated)
		assert.Equal(t, 1, repo.ensured)
	})

	t.Run("appends in bounded chunks", func(t *testing.T) {
		dir := t.TempDir()
		writeParquet(t, filepath.Join(dir, "trips.parquet"), sampleRows(5))
		repo := &fakeLoaderRepo{}
		l := New(repo, dir, 2)

		summary, err := l.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(5), summary.RowsLoaded)
		assert.Equal(t, 5, repo.totalRows())
		for _, batch := range repo.batches {
			assert.LessOrEqual(t, len(batch), 2)
		}
	})

	t.Run("normalizes row values", func(t *testing.T) {
		dir := t.TempDir()
		pickup := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)
		writeParquet(t, filepath.Join(dir, "trips.parquet"), []sourceRow{
			{VendorID: 2, Pickup: pickup, PassengerCount: 3, TripDistance: 4.5},
		})
		repo := &fakeLoaderRepo{}
		l := New(repo, dir, 100)

		_, err := l.Run(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, repo.totalRows())

		row := repo.batches[0][0]
		assert.Equal(t, int64(2), row.VendorID)
		require.NotNil(t, row.PickupDatetime)
		assert.True(t, pickup.Equal(*row.PickupDatetime))
		assert.Equal(t, int64(3), row.PassengerCount)
		assert.Equal(t, 4.5, row.TripDistance)
	})

	t.Run("skips a file with no mapped columns", func(t *testing.T) {
		dir := t.TempDir()
		writeParquet(t, filepath.Join(dir, "a_other.parquet"), []unrelatedRow{{Name: "x", Value: 1}})
		writeParquet(t, filepath.Join(dir, "b_trips.parquet"), sampleRows(2))
		repo := &fakeLoaderRepo{}
		l := New(repo, dir, 100)

		summary, err := l.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.FilesSkipped)
		assert.Equal(t, 1, summary.FilesLoaded)
		assert.Equal(t, int64(2), summary.RowsLoaded)
	})

	t.Run("all files skipped is not an error", func(t *testing.T) {
		dir := t.TempDir()
		writeParquet(t, filepath.Join(dir, "other.parquet"), []unrelatedRow{{Name: "x", Value: 1}})
		repo := &fakeLoaderRepo{}
		l := New(repo, dir, 100)

		summary, err := l.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.FilesSkipped)
		assert.Equal(t, 0, summary.FilesLoaded)
		assert.Equal(t, int64(0), summary.RowsLoaded)
	})

	t.Run("continues past an unreadable file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a_corrupt.parquet"), []byte("not parquet"), 0o644))
		writeParquet(t, filepath.Join(dir, "b_trips.parquet"), sampleRows(2))
		repo := &fakeLoaderRepo{}
		l := New(repo, dir, 100)

		summary, err := l.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, summary.FilesFailed)
		assert.Equal(t, 1, summary.FilesLoaded)
		assert.Equal(t, int64(2), summary.RowsLoaded)
	})

	t.Run("ignores non-parquet files", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0o644))
		repo := &fakeLoaderRepo{}
		l := New(repo, dir, 100)

		_, err := l.Run(ctx)
		assert.ErrorIs(t, err, ErrNoSourceFiles)
	})

	t.Run("loads multiple files in name order", func(t *testing.T) {
		dir := t.TempDir()
		writeParquet(t, filepath.Join(dir, "2024-01.parquet"), sampleRows(2))
		writeParquet(t, filepath.Join(dir, "2024-02.parquet"), sampleRows(3))
		repo := &fakeLoaderRepo{}
		l := New(repo, dir, 100)

		summary, err := l.Run(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.FilesLoaded)
		assert.Equal(t, int64(5), summary.RowsLoaded)
	})
}

func TestOpenParquet(t *testing.T) {
	t.Run("reads a file carrying the pickup timestamp column", func(t *testing.T) {
		// Building the reader must not blow up on the timestamp column;
		// parquet-go maps time.Time fields to the timestamp logical type
		// on its own.
		dir := t.TempDir()
		path := filepath.Join(dir, "trips.parquet")
		writeParquet(t, path, sampleRows(2))

		pf, err := openParquet(path)
		require.NoError(t, err)
		defer func() { _ = pf.Close() }()

		buf := make([]rawTrip, 4)
		rows, err := pf.readChunk(buf)
		if err == nil {
			// The final rows may arrive before the reader reports EOF.
			rest, err2 := pf.readChunk(buf)
			require.ErrorIs(t, err2, io.EOF)
			require.Empty(t, rest)
		} else {
			require.ErrorIs(t, err, io.EOF)
		}
		require.Len(t, rows, 2)
		require.NotNil(t, rows[0].PickupDatetime)
		assert.Equal(t, 2024, rows[0].PickupDatetime.Year())
	})

	t.Run("rejects a file with no mapped columns", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "other.parquet")
		writeParquet(t, path, []unrelatedRow{{Name: "x", Value: 1}})

		_, err := openParquet(path)
		assert.ErrorIs(t, err, errNoMappedColumns)
	})
}

func TestRawTripNormalize(t *testing.T) {
	t.Run("missing values default instead of dropping the row", func(t *testing.T) {
		row := rawTrip{}.normalize()

		assert.Equal(t, int64(0), row.VendorID)
		assert.Nil(t, row.PickupDatetime)
		assert.Equal(t, int64(0), row.PassengerCount)
		assert.Equal(t, 0.0, row.TripDistance)
	})

	t.Run("fractional passenger counts truncate to integers", func(t *testing.T) {
		v := 2.9
		row := rawTrip{PassengerCount: &v}.normalize()
		assert.Equal(t, int64(2), row.PassengerCount)
	})
}
