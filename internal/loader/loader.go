package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/guttosm/taxi-data-service/internal/logger"
	"github.com/guttosm/taxi-data-service/internal/metrics"
	"github.com/guttosm/taxi-data-service/internal/repository"
)

// ErrNoSourceFiles is returned when the data directory contains no parquet
// files. Callers should treat it as a configuration error and exit nonzero.
var ErrNoSourceFiles = errors.New("no parquet files found in data directory")

// Loader discovers parquet files in a directory and loads them into the
// trip table, replacing any previous contents.
type Loader struct {
	repo      repository.TripLoaderInterface
	dataDir   string
	chunkSize int
}

// Summary reports the outcome of a load run.
type Summary struct {
	FilesLoaded  int
	FilesSkipped int
	FilesFailed  int
	RowsLoaded   int64
	Elapsed      time.Duration
}

// New creates a Loader over the given repository and source directory.
func New(repo repository.TripLoaderInterface, dataDir string, chunkSize int) *Loader {
	if chunkSize <= 0 {
		chunkSize = 10000
	}
	return &Loader{repo: repo, dataDir: dataDir, chunkSize: chunkSize}
}

// Run executes a full load: discover files, reset the table, then ingest
// each file in order. A file that cannot be read or written is logged and
// skipped; the run continues with the remaining files. The table reset
// happens exactly once, before the first file, so repeated runs replace
// rather than accumulate data.
func (l *Loader) Run(ctx context.Context) (*Summary, error) {
	log := logger.Logger()
	start := time.Now()

	files, err := filepath.Glob(filepath.Join(l.dataDir, "*.parquet"))
	if err != nil {
		return nil, fmt.Errorf("scan data directory %s: %w", l.dataDir, err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSourceFiles, l.dataDir)
	}
	log.Info().Int("files", len(files)).Str("dir", l.dataDir).Msg("Starting load")

	if err := l.resetTable(ctx); err != nil {
		return nil, err
	}

	summary := &Summary{}
	for _, path := range files {
		rows, err := l.loadFile(ctx, path)
		switch {
		case errors.Is(err, errNoMappedColumns):
			log.Warn().Str("file", path).Msg("Skipping file: no mapped columns present")
			summary.FilesSkipped++
			metrics.RecordLoaderFile("skipped", 0)
		case err != nil:
			log.Error().Err(err).Str("file", path).Msg("Failed to load file, continuing")
			summary.FilesFailed++
			metrics.RecordLoaderFile("failed", int(rows))
		default:
			log.Info().Str("file", path).Int64("rows", rows).Msg("Loaded file")
			summary.FilesLoaded++
			metrics.RecordLoaderFile("loaded", int(rows))
		}
		summary.RowsLoaded += rows
	}

	summary.Elapsed = time.Since(start)
	log.Info().
		Int("files_loaded", summary.FilesLoaded).
		Int("files_skipped", summary.FilesSkipped).
		Int("files_failed", summary.FilesFailed).
		Int64("rows", summary.RowsLoaded).
		Dur("elapsed", summary.Elapsed).
		Msg("Load complete")
	return summary, nil
}

// resetTable truncates the trip table when it already exists, otherwise
// creates it, then ensures indexes are in place.
func (l *Loader) resetTable(ctx context.Context) error {
	log := logger.Logger()

	exists, err := l.repo.TableExists(ctx)
	if err != nil {
		return fmt.Errorf("check table: %w", err)
	}
	if exists {
		log.Info().Msg("Trip table exists, truncating before load")
		if err := l.repo.Truncate(ctx); err != nil {
			return fmt.Errorf("truncate table: %w", err)
		}
	} else {
		log.Info().Msg("Trip table missing, creating")
	}
	if err := l.repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// loadFile streams one parquet file into the table in chunks, returning the
// number of rows appended (possibly nonzero even on error).
func (l *Loader) loadFile(ctx context.Context, path string) (int64, error) {
	pf, err := openParquet(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = pf.Close() }()

	var appended int64
	buf := make([]rawTrip, l.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return appended, err
		}
		rows, err := pf.readChunk(buf)
		if len(rows) > 0 {
			if werr := l.repo.AppendBatch(ctx, rows); werr != nil {
				return appended, fmt.Errorf("append batch from %s: %w", path, werr)
			}
			appended += int64(len(rows))
		}
		if errors.Is(err, io.EOF) {
			return appended, nil
		}
		if err != nil {
			return appended, fmt.Errorf("read %s: %w", path, err)
		}
	}
}
