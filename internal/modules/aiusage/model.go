package aiusage

import "errors"

// ErrInsufficientTokens is returned when a user has no generations left for the current month.
var ErrInsufficientTokens = errors.New("insufficient tokens")

// DefaultMonthlyTrips is the generation allowance granted each month when none is configured.
const DefaultMonthlyTrips = 20

// Usage is the caller's standing for the current month.
type Usage struct {
	Month     string `json:"month"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
}

const monthLayout = "2006-01"
