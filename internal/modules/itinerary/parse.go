// README: Response validator; extracts, parses, normalizes and checks the model's itinerary JSON.
package itinerary

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var dayLabelPattern = regexp.MustCompile(`(?i)^\s*(?:day\s*)?(\d+)\s*$`)

// ParseResponse accepts raw completion text and returns the itinerary it
// contains, or an error wrapping one of the content sentinels.
func ParseResponse(raw string, expectedDays int) (Itinerary, error) {
	body, err := ExtractJSON(raw)
	if err != nil {
		return Itinerary{}, err
	}

	var it Itinerary
	if err := json.Unmarshal([]byte(body), &it); err != nil {
		return Itinerary{}, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	it = Normalize(it)
	if err := Validate(it, expectedDays); err != nil {
		return Itinerary{}, err
	}
	return it, nil
}

// ExtractJSON returns the substring from the first '{' to the last '}'.
func ExtractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return "", ErrNoJSONFound
	}
	return raw[start : end+1], nil
}

// Normalize trims whitespace on every free-text field. It returns a copy.
func Normalize(it Itinerary) Itinerary {
	out := Itinerary{
		Days:                make([]DayPlan, len(it.Days)),
		TopAttractions:      make([]Attraction, len(it.TopAttractions)),
		PersonalizedMessage: strings.TrimSpace(it.PersonalizedMessage),
	}
	for i, d := range it.Days {
		activities := make([]string, 0, len(d.Activities))
		for _, a := range d.Activities {
			if a = strings.TrimSpace(a); a != "" {
				activities = append(activities, a)
			}
		}
		out.Days[i] = DayPlan{
			Day:        d.Day,
			Title:      strings.TrimSpace(d.Title),
			Activities: activities,
			Duration:   strings.TrimSpace(d.Duration),
			Distance:   strings.TrimSpace(d.Distance),
			Steps:      strings.TrimSpace(d.Steps),
		}
	}
	for i, a := range it.TopAttractions {
		out.TopAttractions[i] = Attraction{
			Name: strings.TrimSpace(a.Name),
			Day:  strings.TrimSpace(a.Day),
		}
	}
	return out
}

// Validate enforces the structural contract of a stored itinerary.
func Validate(it Itinerary, expectedDays int) error {
	if len(it.Days) == 0 {
		return fmt.Errorf("%w: days is missing or empty", ErrInvalidItinerary)
	}
	if len(it.Days) != expectedDays {
		return fmt.Errorf("%w: got %d days, want %d", ErrDayCountMismatch, len(it.Days), expectedDays)
	}

	byDay := make(map[int]DayPlan, len(it.Days))
	for i, d := range it.Days {
		if d.Day != i+1 {
			return fmt.Errorf("%w: day at position %d is numbered %d", ErrInvalidItinerary, i+1, d.Day)
		}
		if d.Title == "" {
			return fmt.Errorf("%w: day %d has no title", ErrInvalidItinerary, d.Day)
		}
		if len(d.Activities) == 0 {
			return fmt.Errorf("%w: day %d has no activities", ErrInvalidItinerary, d.Day)
		}
		byDay[d.Day] = d
	}

	if n, least := len(it.TopAttractions), minTopAttractions(expectedDays); n < least || n > MaxTopAttractions {
		return fmt.Errorf("%w: expected %d to %d top attractions, got %d", ErrInvalidItinerary, least, MaxTopAttractions, n)
	}
	for _, a := range it.TopAttractions {
		if a.Name == "" {
			return fmt.Errorf("%w: top attraction without a name", ErrInvalidItinerary)
		}
		day, ok := ParseDayLabel(a.Day)
		if !ok {
			return fmt.Errorf("%w: %q references unreadable day %q", ErrAttractionNotGrounded, a.Name, a.Day)
		}
		plan, ok := byDay[day]
		if !ok {
			return fmt.Errorf("%w: %q references missing day %d", ErrAttractionNotGrounded, a.Name, day)
		}
		if !mentions(plan.Activities, a.Name) {
			return fmt.Errorf("%w: %q does not appear in day %d activities", ErrAttractionNotGrounded, a.Name, day)
		}
	}
	return nil
}

// minTopAttractions is MaxTopAttractions, lowered for trips shorter than that
// so one- and two-day trips are not forced to repeat a highlight.
func minTopAttractions(days int) int {
	return min(MaxTopAttractions, max(days, 1))
}

// UnmarshalJSON also accepts a bare number for "day", which models emit now and then.
func (a *Attraction) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name string          `json:"name"`
		Day  json.RawMessage `json:"day"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Name = raw.Name
	a.Day = ""
	if len(raw.Day) == 0 || string(raw.Day) == "null" {
		return nil
	}
	var n int
	if err := json.Unmarshal(raw.Day, &n); err == nil {
		a.Day = fmt.Sprintf("Day %d", n)
		return nil
	}
	return json.Unmarshal(raw.Day, &a.Day)
}

// ParseDayLabel reads labels such as "Day 2", "day2" or "2".
func ParseDayLabel(label string) (int, bool) {
	m := dayLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func mentions(activities []string, name string) bool {
	needle := strings.ToLower(name)
	for _, a := range activities {
		if strings.Contains(strings.ToLower(a), needle) {
			return true
		}
	}
	return false
}
