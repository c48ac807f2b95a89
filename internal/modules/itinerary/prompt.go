// README: Request builder; turns a TripRequest into the instruction prompt for the completion service.
package itinerary

import (
	"fmt"
	"strings"
	"time"
)

var personalityDirectives = map[string]string{
	"Adventurer":    "Include outdoor activities, hiking and unique experiences",
	"Foodie":        "Include famous restaurants, food markets and local cuisine spots",
	"Art Lover":     "Include museums, galleries and street art areas",
	"Photographer":  "Include scenic viewpoints and photo spots",
	"Concert Lover": "Check for concerts, music festivals and live performances happening during %s in %s",
	"Sports Fan":    "Check for sports events, matches and tournaments happening during %s in %s",
	"Local Culture": "Include traditional markets, cultural centers and local neighborhoods, and check for seasonal festivals and cultural events during %s in %s",
}

// directives that name the travel period take (period, destination) arguments.
var periodDirectives = map[string]bool{
	"Concert Lover": true,
	"Sports Fan":    true,
	"Local Culture": true,
}

const displayDate = "January 2, 2006"

// BuildPrompt renders the full instruction prompt for req. The output only
// depends on req, so equal requests always produce equal prompts.
func BuildPrompt(req TripRequest) (string, error) {
	if err := req.checkRequired(); err != nil {
		return "", err
	}

	dest := strings.TrimSpace(req.Destination)
	name := strings.TrimSpace(req.TravelerName)
	period := TravelPeriod(req.StartDate)
	foods := strings.Join(req.Foods, ", ")
	personalities := strings.Join(req.Personalities, ", ")
	if foods == "" {
		foods = "No preference"
	}
	if personalities == "" {
		personalities = "No preference"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed %d-day trip itinerary for %s, age %d, traveling from %s to %s.\n\n",
		req.StayingPeriod, name, req.TravelerAge, strings.TrimSpace(req.CurrentLocation), dest)
	fmt.Fprintf(&b, "Travel Dates: %s to %s\n", req.StartDate.Format(displayDate), req.EndDate.Format(displayDate))
	fmt.Fprintf(&b, "Travel Period: %s\n", period)
	fmt.Fprintf(&b, "Personality: %s\n", personalities)
	fmt.Fprintf(&b, "Favorite foods: %s\n\n", foods)

	b.WriteString("CRITICAL REQUIREMENTS:\n")
	fmt.Fprintf(&b, "1. Create activities ONLY for %s. All %d days should be spent exploring %s.\n", dest, req.StayingPeriod, dest)
	fmt.Fprintf(&b, "2. Use REAL, SPECIFIC places that exist in %s - include actual names of:\n", dest)
	b.WriteString("   - Tourist attractions (museums, landmarks, monuments)\n")
	fmt.Fprintf(&b, "   - Restaurants and cafes (match the food preferences: %s)\n", foods)
	b.WriteString("   - Neighborhoods, districts, streets and squares to explore\n")
	b.WriteString("   - DO NOT suggest specific hotels or accommodation names\n")
	b.WriteString("   - DO NOT include check-in or check-out activities\n")

	fmt.Fprintf(&b, "3. Match activities to personality traits: %s\n", personalities)
	for _, tag := range req.Personalities {
		fmt.Fprintf(&b, "   - %q: %s\n", tag, personalityDirective(tag, period, dest))
	}

	fmt.Fprintf(&b, "4. SEASONAL ATTRACTIONS (travel month: %s):\n", req.StartDate.Month())
	for _, line := range seasonalGuidance(req.StartDate.Month()) {
		fmt.Fprintf(&b, "   - %s\n", line)
	}

	b.WriteString("5. SPECIFIC EVENTS (concerts, sports):\n")
	fmt.Fprintf(&b, "   - Prefer REAL events confirmed for %s in %s (concerts, sports fixtures, seasonal markets) over invented ones\n", period, dest)
	b.WriteString("   - ONLY name a specific event if you are CERTAIN it happens on those exact dates\n")
	b.WriteString("   - Otherwise suggest the general category instead, for example:\n")
	b.WriteString("     * \"Check for Premier League fixtures at Anfield Stadium (verify schedule)\" instead of an invented matchup\n")
	b.WriteString("     * \"Explore live music venues like [Venue Name]\" instead of an invented concert\n")
	b.WriteString("   - NEVER invent specific event matchups or concert dates\n")

	fmt.Fprintf(&b, "6. For restaurants, match the food types selected (%s):\n", foods)
	for _, food := range req.Foods {
		fmt.Fprintf(&b, "   - %q: %s\n", food, foodDirective(food, dest))
		if venues := req.Venues[food]; len(venues) > 0 {
			fmt.Fprintf(&b, "     Known real venues: %s\n", strings.Join(venues, "; "))
		}
	}

	b.WriteString("7. Format activities like: \"Visit [Specific Place Name] - [brief description] - [duration in minutes]\"\n")
	b.WriteString("8. Make durations realistic (7-12 hours per day)\n")
	b.WriteString("9. Calculate realistic walking distances and steps\n\n")

	b.WriteString("Provide a JSON response with this structure:\n")
	b.WriteString(OutputSchema(req))
	b.WriteString("\n\n")

	b.WriteString("CRITICAL REQUIREMENTS FOR TOP ATTRACTIONS:\n")
	fmt.Fprintf(&b, "- The attractions listed in \"topAttractions\" MUST be major, iconic attractions in %s\n", dest)
	b.WriteString("- Each attraction MUST actually appear in the activities list of the day specified\n")
	b.WriteString("- The attraction name MUST appear literally inside one of that day's activity strings\n")
	b.WriteString("- Example: if topAttractions includes {\"name\": \"Eiffel Tower\", \"day\": \"Day 1\"}, Day 1's activities must include something like \"Visit Eiffel Tower - 90 minutes\"\n\n")

	b.WriteString("IMPORTANT:\n")
	fmt.Fprintf(&b, "- The \"days\" array MUST contain exactly %d entries numbered 1 to %d\n", req.StayingPeriod, req.StayingPeriod)
	fmt.Fprintf(&b, "- Always include EXACTLY %d attractions in the topAttractions array\n", MaxTopAttractions)
	b.WriteString("- Keep personalizedMessage to 2 sentences maximum\n")
	b.WriteString("- Respond with the JSON object only")

	return b.String(), nil
}

// OutputSchema is the JSON contract embedded in the prompt.
func OutputSchema(req TripRequest) string {
	dest := strings.TrimSpace(req.Destination)
	var attractions []string
	for i := 1; i <= MaxTopAttractions; i++ {
		day := i
		if req.StayingPeriod > 0 && day > req.StayingPeriod {
			day = req.StayingPeriod
		}
		attractions = append(attractions,
			fmt.Sprintf(`    {"name": "Real attraction name in %s", "day": "Day %d"}`, dest, day))
	}
	return fmt.Sprintf(`{
  "days": [
    {
      "day": 1,
      "title": "Arrival & [Area Name]",
      "activities": ["Specific activity with real place name - duration", "Another activity - duration"],
      "duration": "9h 15m",
      "distance": "4.1 km",
      "steps": "6,000 steps"
    }
  ],
  "topAttractions": [
%s
  ],
  "personalizedMessage": "A short 2-sentence personal message for %s about their trip to %s."
}`, strings.Join(attractions, ",\n"), strings.TrimSpace(req.TravelerName), dest)
}

// TravelPeriod labels the month and year of the trip start, e.g. "June 2026".
func TravelPeriod(start time.Time) string {
	return fmt.Sprintf("%s %d", start.Month(), start.Year())
}

func personalityDirective(tag, period, dest string) string {
	d, ok := personalityDirectives[tag]
	if !ok {
		return fmt.Sprintf("Include activities in %s that suit someone who describes themselves as %q", dest, tag)
	}
	if periodDirectives[tag] {
		return fmt.Sprintf(d, period, dest)
	}
	return d
}

func foodDirective(food, dest string) string {
	if food == LocalFoodTag {
		return fmt.Sprintf("Include real restaurants and markets known for the traditional dishes of %s", dest)
	}
	return fmt.Sprintf("Name real establishments in %s that serve %s", dest, food)
}

func seasonalGuidance(m time.Month) []string {
	switch m {
	case time.November, time.December:
		return []string{
			"WINTER: if the destination is in Europe, include Christmas markets with SPECIFIC market names",
			"Mention seasonal food and drink such as mulled wine and holiday shopping",
		}
	case time.January, time.February:
		return []string{
			"WINTER: favour indoor attractions, winter sports and seasonal festivals that reliably happen this month",
		}
	case time.March, time.April, time.May:
		return []string{
			"SPRING: include cherry blossoms or spring gardens where the destination has them",
			"Include Easter markets in March-April where they are traditional",
		}
	case time.June, time.July, time.August:
		return []string{
			"SUMMER: include outdoor concerts in parks, outdoor festivals and street fairs",
			"Include beach activities if the destination is coastal",
		}
	default:
		return []string{
			"AUTUMN: include Oktoberfest if visiting Munich between mid-September and early October",
			"Include fall foliage viewing in parks and nature areas",
		}
	}
}
