package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

const (
	minVenueRating = 4.0
	venuesPerFood  = 3
)

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// PlacesService looks up real venues with the Google Places text search.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// FindVenues returns up to three well-rated places in destination serving food.
func (s *PlacesService) FindVenues(ctx context.Context, destination, food string) ([]Place, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query: VenueQuery(destination, food),
		Type:  maps.PlaceTypeRestaurant,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	return selectPlaces(resp.Results, venuesPerFood), nil
}

// VenueHints maps each food to the names FindVenues returned. Foods with no
// result or a failed lookup are left out; the first error is returned alongside.
func (s *PlacesService) VenueHints(ctx context.Context, destination string, foods []string) (map[string][]string, error) {
	hints := make(map[string][]string)
	var firstErr error
	for _, food := range foods {
		places, err := s.FindVenues(ctx, destination, food)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}
		for _, p := range places {
			hints[food] = append(hints[food], p.Name)
		}
	}
	return hints, firstErr
}

// VenueQuery builds the text search query for a food tag.
func VenueQuery(destination, food string) string {
	if strings.EqualFold(food, "Local Food") {
		return fmt.Sprintf("traditional local cuisine restaurant in %s", destination)
	}
	return fmt.Sprintf("%s restaurant in %s", food, destination)
}

func selectPlaces(results []maps.PlacesSearchResult, limit int) []Place {
	var out []Place
	for _, r := range results {
		if r.Rating < minVenueRating || strings.TrimSpace(r.Name) == "" {
			continue
		}
		if r.BusinessStatus == "CLOSED_PERMANENTLY" {
			continue
		}
		out = append(out, Place{
			Name:             r.Name,
			Address:          r.FormattedAddress,
			Rating:           r.Rating,
			PlaceID:          r.PlaceID,
			UserRatingsTotal: r.UserRatingsTotal,
		})
		if len(out) >= limit {
			break
		}
	}
	return out
}
