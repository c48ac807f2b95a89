// README: Trip request and itinerary shapes exchanged with the completion service.
package itinerary

import (
	"fmt"
	"strings"
	"time"
)

const (
	MinStayingPeriod = 1
	MaxStayingPeriod = 30

	// MaxTagSelections covers three ordinary picks plus the optional "Local Food" sentinel.
	MaxTagSelections = 4

	// MaxTopAttractions is the number of highlights the prompt asks for.
	MaxTopAttractions = 3

	LocalFoodTag = "Local Food"
)

// TripRequest is built once from the onboarding answers and consumed by BuildPrompt.
type TripRequest struct {
	Destination     string    `json:"destination"`
	StayingPeriod   int       `json:"staying_period"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Foods           []string  `json:"foods"`
	Personalities   []string  `json:"personalities"`
	TravelerName    string    `json:"traveler_name"`
	TravelerAge     int       `json:"traveler_age"`
	CurrentLocation string    `json:"current_location"`

	// Venues maps a food tag to real venue names found for the destination.
	// Optional; only used as hints inside the prompt.
	Venues map[string][]string `json:"venues,omitempty"`
}

// Itinerary is the validated day-by-day plan stored on a trip.
type Itinerary struct {
	Days                []DayPlan    `json:"days"`
	TopAttractions      []Attraction `json:"topAttractions"`
	PersonalizedMessage string       `json:"personalizedMessage"`
}

type DayPlan struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Activities []string `json:"activities"`
	Duration   string   `json:"duration,omitempty"`
	Distance   string   `json:"distance,omitempty"`
	Steps      string   `json:"steps,omitempty"`
}

// Attraction references a day by its label, e.g. "Day 2".
type Attraction struct {
	Name string `json:"name"`
	Day  string `json:"day"`
}

// DaysBetween returns the inclusive number of calendar days from start to end.
func DaysBetween(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Validate checks every invariant of a trip request. The HTTP layer and the
// planner call it before anything is reserved or generated.
func (r TripRequest) Validate() error {
	if err := r.checkRequired(); err != nil {
		return err
	}
	if r.StayingPeriod < MinStayingPeriod || r.StayingPeriod > MaxStayingPeriod {
		return fmt.Errorf("%w: staying period must be between %d and %d days", ErrInvalidRequest, MinStayingPeriod, MaxStayingPeriod)
	}
	if days := DaysBetween(r.StartDate, r.EndDate); days != r.StayingPeriod {
		return fmt.Errorf("%w: staying period %d does not match date range of %d days", ErrInvalidRequest, r.StayingPeriod, days)
	}
	if r.TravelerAge <= 0 {
		return fmt.Errorf("%w: traveler age must be positive", ErrInvalidRequest)
	}
	if len(r.Foods) > MaxTagSelections {
		return fmt.Errorf("%w: at most %d food selections", ErrInvalidRequest, MaxTagSelections)
	}
	if len(r.Personalities) > MaxTagSelections {
		return fmt.Errorf("%w: at most %d personality selections", ErrInvalidRequest, MaxTagSelections)
	}
	return nil
}

// checkRequired is the subset of Validate that BuildPrompt enforces.
func (r TripRequest) checkRequired() error {
	var missing []string
	if strings.TrimSpace(r.Destination) == "" {
		missing = append(missing, "destination")
	}
	if strings.TrimSpace(r.TravelerName) == "" {
		missing = append(missing, "traveler_name")
	}
	if strings.TrimSpace(r.CurrentLocation) == "" {
		missing = append(missing, "current_location")
	}
	if r.StartDate.IsZero() {
		missing = append(missing, "start_date")
	}
	if r.EndDate.IsZero() {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}
	if DaysBetween(r.StartDate, r.EndDate) < 1 {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidRequest)
	}
	return nil
}
