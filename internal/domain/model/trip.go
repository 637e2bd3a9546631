// Package model defines the domain records for the taxi data service.
package model

import "time"

// TaxiTrip is a stored trip record. The JSON shape is the HTTP wire format
// and the cached representation; the three optional columns are pointers so
// a stored NULL serializes as JSON null.
type TaxiTrip struct {
	ID             int64      `json:"id"`
	VendorID       int64      `json:"vendor_id"`
	PickupDatetime *time.Time `json:"pickup_datetime"`
	PassengerCount *int64     `json:"passenger_count"`
	TripDistance   *float64   `json:"trip_distance"`
}

// TripCreate carries the fields for inserting a new trip. VendorID and
// PickupDatetime are mandatory; nil optional fields store as NULL.
type TripCreate struct {
	VendorID       int64
	PickupDatetime time.Time
	PassengerCount *int64
	TripDistance   *float64
}

// TripPatch carries a partial update. Nil fields leave the stored values
// untouched.
type TripPatch struct {
	VendorID       *int64
	PickupDatetime *time.Time
	PassengerCount *int64
	TripDistance   *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p TripPatch) IsEmpty() bool {
	return p.VendorID == nil && p.PickupDatetime == nil && p.PassengerCount == nil && p.TripDistance == nil
}

// TripImport is one bulk-load row after coercion. Integers default to zero
// and distances to 0.0; only the pickup timestamp keeps absence as NULL.
type TripImport struct {
	VendorID       int64
	PickupDatetime *time.Time
	PassengerCount int64
	TripDistance   float64
}

// PassengerStat is one row of the by-passenger-count aggregation.
type PassengerStat struct {
	PassengerCount  int64   `json:"passenger_count"`
	AverageDistance float64 `json:"average_distance"`
}
