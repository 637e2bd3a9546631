package dto

// ErrorResponse is the wire shape for all error bodies. Clients depend on the
// exact {"detail": "..."} form, so it must not grow envelope fields.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// NewError creates an ErrorResponse with the given detail message.
func NewError(detail string) ErrorResponse {
	return ErrorResponse{Detail: detail}
}

const (
	// DetailTripNotFound is the 404 body for a missing trip id.
	DetailTripNotFound = "Trip not found"
	// DetailInternalError is the generic 500 body.
	DetailInternalError = "Internal server error"
	// DetailRateLimited is the 429 body.
	DetailRateLimited = "Too many requests"
	// DetailUnauthorized is the 401 body.
	DetailUnauthorized = "Invalid or missing API key"
)
