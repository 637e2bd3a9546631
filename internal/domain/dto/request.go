// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model, providing validation
// and serialization for API communication.
package dto

import (
	"time"

	"github.com/guttosm/taxi-data-service/internal/domain/model"
)

// CreateTripRequest is the JSON body for POST /trips/.
//
// VendorID and PickupDatetime are mandatory; PassengerCount and TripDistance
// are optional and stored as NULL when absent.
type CreateTripRequest struct {
	VendorID       *int64     `json:"vendor_id" binding:"required"`
	PickupDatetime *time.Time `json:"pickup_datetime" binding:"required"`
	PassengerCount *int64     `json:"passenger_count"`
	TripDistance   *float64   `json:"trip_distance"`
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrMissingVendorID is returned when vendor_id is absent.
	ErrMissingVendorID = &ValidationError{Field: "vendor_id", Message: "is required"}
	// ErrMissingPickupDatetime is returned when pickup_datetime is absent.
	ErrMissingPickupDatetime = &ValidationError{Field: "pickup_datetime", Message: "is required"}
	// ErrNegativePassengerCount is returned when passenger_count is negative.
	ErrNegativePassengerCount = &ValidationError{Field: "passenger_count", Message: "must not be negative"}
	// ErrNegativeTripDistance is returned when trip_distance is negative.
	ErrNegativeTripDistance = &ValidationError{Field: "trip_distance", Message: "must not be negative"}
)

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *CreateTripRequest) Validate() error {
	if r.VendorID == nil {
		return ErrMissingVendorID
	}
	if r.PickupDatetime == nil {
		return ErrMissingPickupDatetime
	}
	if r.PassengerCount != nil && *r.PassengerCount < 0 {
		return ErrNegativePassengerCount
	}
	if r.TripDistance != nil && *r.TripDistance < 0 {
		return ErrNegativeTripDistance
	}
	return nil
}

// ToCreate converts the request to the domain create type.
// Validate must have passed before calling.
func (r *CreateTripRequest) ToCreate() model.TripCreate {
	return model.TripCreate{
		VendorID:       *r.VendorID,
		PickupDatetime: *r.PickupDatetime,
		PassengerCount: r.PassengerCount,
		TripDistance:   r.TripDistance,
	}
}

// UpdateTripRequest is the JSON body for PUT /trips/{id}. All fields are
// optional; only fields present in the body are written (PATCH semantics).
type UpdateTripRequest struct {
	VendorID       *int64     `json:"vendor_id"`
	PickupDatetime *time.Time `json:"pickup_datetime"`
	PassengerCount *int64     `json:"passenger_count"`
	TripDistance   *float64   `json:"trip_distance"`
}

// Validate performs custom validation on the request.
func (r *UpdateTripRequest) Validate() error {
	if r.PassengerCount != nil && *r.PassengerCount < 0 {
		return ErrNegativePassengerCount
	}
	if r.TripDistance != nil && *r.TripDistance < 0 {
		return ErrNegativeTripDistance
	}
	return nil
}

// ToPatch converts the request to the domain patch type.
func (r *UpdateTripRequest) ToPatch() model.TripPatch {
	return model.TripPatch{
		VendorID:       r.VendorID,
		PickupDatetime: r.PickupDatetime,
		PassengerCount: r.PassengerCount,
		TripDistance:   r.TripDistance,
	}
}
