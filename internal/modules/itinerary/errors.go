// README: Failure kinds for building requests and accepting model output.
package itinerary

import "errors"

var (
	ErrInvalidRequest        = errors.New("invalid trip request")
	ErrTransportFailure      = errors.New("completion transport failure")
	ErrNoJSONFound           = errors.New("no json object found in response")
	ErrMalformedJSON         = errors.New("malformed json in response")
	ErrDayCountMismatch      = errors.New("day count mismatch")
	ErrAttractionNotGrounded = errors.New("attraction not grounded in activities")
	ErrInvalidItinerary      = errors.New("invalid itinerary structure")
)

// Kind returns a stable code for err, suitable for API responses and log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrTransportFailure):
		return "transport_failure"
	case errors.Is(err, ErrNoJSONFound):
		return "no_json_found"
	case errors.Is(err, ErrMalformedJSON):
		return "malformed_json"
	case errors.Is(err, ErrDayCountMismatch):
		return "day_count_mismatch"
	case errors.Is(err, ErrAttractionNotGrounded):
		return "attraction_not_grounded"
	case errors.Is(err, ErrInvalidItinerary):
		return "invalid_itinerary"
	default:
		return "unknown"
	}
}

// IsContentError reports whether err came from validating model output
// rather than from the request or the transport.
func IsContentError(err error) bool {
	return errors.Is(err, ErrNoJSONFound) ||
		errors.Is(err, ErrMalformedJSON) ||
		errors.Is(err, ErrDayCountMismatch) ||
		errors.Is(err, ErrAttractionNotGrounded) ||
		errors.Is(err, ErrInvalidItinerary)
}
