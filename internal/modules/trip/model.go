// README: Trip aggregate and status definitions.
package trip

import (
	"time"

	"trippo/internal/modules/itinerary"
)

type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCompleted Status = "completed"
)

// Trip is a generated itinerary together with the answers it was generated from.
type Trip struct {
	ID              string              `json:"id"`
	OwnerID         string              `json:"ownerId"`
	Title           string              `json:"title"`
	Destination     string              `json:"destination"`
	StayingPeriod   int                 `json:"stayingPeriod"`
	TravelerName    string              `json:"travelerName"`
	TravelerAge     int                 `json:"travelerAge"`
	CurrentLocation string              `json:"currentLocation"`
	StartDate       time.Time           `json:"startDate"`
	EndDate         time.Time           `json:"endDate"`
	Foods           []string            `json:"foods"`
	Personalities   []string            `json:"personalities"`
	Itinerary       itinerary.Itinerary `json:"itinerary"`
	IsSaved         bool                `json:"isSaved"`
	IsFavorite      bool                `json:"isFavorite"`
	Status          Status              `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// Filter narrows List results; nil fields are ignored.
type Filter struct {
	Status   *Status
	Favorite *bool
	Saved    *bool
}

// AllowedTransitions: a trip can be marked done and reopened.
var AllowedTransitions = map[Status][]Status{
	StatusUpcoming:  {StatusCompleted},
	StatusCompleted: {StatusUpcoming},
}

func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ParseStatus(v string) (Status, bool) {
	switch s := Status(v); s {
	case StatusUpcoming, StatusCompleted:
		return s, true
	}
	return "", false
}

// FromRequest builds an unsaved upcoming trip for owner.
func FromRequest(owner string, req itinerary.TripRequest, it itinerary.Itinerary) *Trip {
	return &Trip{
		OwnerID:         owner,
		Title:           DefaultTitle(req.Destination),
		Destination:     req.Destination,
		StayingPeriod:   req.StayingPeriod,
		TravelerName:    req.TravelerName,
		TravelerAge:     req.TravelerAge,
		CurrentLocation: req.CurrentLocation,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Foods:           nonNil(req.Foods),
		Personalities:   nonNil(req.Personalities),
		Itinerary:       it,
		Status:          StatusUpcoming,
	}
}

func DefaultTitle(destination string) string {
	return "Trip to " + destination
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
