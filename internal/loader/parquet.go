// Package loader implements one-shot ingestion of parquet trip files into
// the store. It normalizes source columns to the taxi_trips schema, coerces
// types with degrade-not-drop semantics, and appends rows in bounded batches.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/guttosm/taxi-data-service/internal/domain/model"
)

// sourceColumns maps raw source column names to target schema fields. A file
// contributes only the mapped columns it actually has; missing target
// columns are back-filled with nulls so every file yields a uniform schema.
var sourceColumns = map[string]string{
	"VendorID":             "vendor_id",
	"tpep_pickup_datetime": "pickup_datetime",
	"passenger_count":      "passenger_count",
	"trip_distance":        "trip_distance",
}

// errNoMappedColumns marks a file containing none of the mapped source
// columns. The loader skips such files with a warning instead of failing.
var errNoMappedColumns = errors.New("file contains none of the mapped columns")

// rawTrip mirrors the mapped source columns. Every field is optional so
// files missing a column still read cleanly, with nil standing in for the
// back-filled null column.
type rawTrip struct {
	VendorID       *int64     `parquet:"VendorID,optional"`
	PickupDatetime *time.Time `parquet:"tpep_pickup_datetime,optional"`
	PassengerCount *float64   `parquet:"passenger_count,optional"`
	TripDistance   *float64   `parquet:"trip_distance,optional"`
}

// normalize coerces one raw row to the uniform import schema: integers
// default to 0, distances to 0.0, and an absent or unparseable timestamp
// becomes a NULL rather than dropping the row.
func (r rawTrip) normalize() model.TripImport {
	row := model.TripImport{}
	if r.VendorID != nil {
		row.VendorID = *r.VendorID
	}
	if r.PickupDatetime != nil {
		t := r.PickupDatetime.UTC()
		row.PickupDatetime = &t
	}
	if r.PassengerCount != nil {
		row.PassengerCount = int64(*r.PassengerCount)
	}
	if r.TripDistance != nil {
		row.TripDistance = *r.TripDistance
	}
	return row
}

// parquetFile wraps an open parquet source file.
type parquetFile struct {
	osFile *os.File
	reader *parquet.GenericReader[rawTrip]
}

// openParquet opens path and verifies it carries at least one mapped source
// column, returning errNoMappedColumns otherwise.
func openParquet(path string) (*parquetFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	schema := pf.Schema()
	mapped := 0
	for source := range sourceColumns {
		if _, ok := schema.Lookup(source); ok {
			mapped++
		}
	}
	if mapped == 0 {
		_ = f.Close()
		return nil, errNoMappedColumns
	}

	return &parquetFile{
		osFile: f,
		reader: parquet.NewGenericReader[rawTrip](pf),
	}, nil
}

// readChunk reads up to len(buf) rows, returning the normalized rows and
// io.EOF after the final chunk.
func (p *parquetFile) readChunk(buf []rawTrip) ([]model.TripImport, error) {
	n, err := p.reader.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	rows := make([]model.TripImport, 0, n)
	for _, raw := range buf[:n] {
		rows = append(rows, raw.normalize())
	}
	if errors.Is(err, io.EOF) {
		return rows, io.EOF
	}
	return rows, nil
}

// Close releases the reader and underlying file.
func (p *parquetFile) Close() error {
	err := p.reader.Close()
	if cerr := p.osFile.Close(); err == nil {
		err = cerr
	}
	return err
}
