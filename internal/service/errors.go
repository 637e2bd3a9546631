// Package service contains the business logic for the taxi data service.
package service

import "errors"

// ErrTripNotFound is returned when the requested trip id does not exist in
// the store. It is never cached and maps to a 404 at the HTTP layer.
var ErrTripNotFound = errors.New("trip not found")
