// README: Generates one itinerary with the configured provider and prints the validated result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"trippo/internal/ai"
	"trippo/internal/config"
	"trippo/internal/log"
	"trippo/internal/modules/itinerary"
	"trippo/internal/types"
)

func main() {
	destination := flag.String("destination", "Paris, France", "trip destination")
	days := flag.Int("days", 3, "number of days")
	start := flag.String("start", time.Now().AddDate(0, 1, 0).Format(time.DateOnly), "first day (YYYY-MM-DD)")
	foods := flag.String("foods", "Pizza,Local Food", "comma-separated food tags")
	personalities := flag.String("personalities", "Foodie,Art Lover", "comma-separated personality tags")
	token := flag.String("token", os.Getenv("TRIPPO_DEMO_TOKEN"), "session token forwarded by the proxy provider")
	printPrompt := flag.Bool("print-prompt", false, "print the prompt before calling the provider")
	flag.Parse()

	logger, _ := log.New(config.LoggingConfig{Level: "info", Format: "text"})

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("load config")
	}

	startDate, err := time.Parse(time.DateOnly, *start)
	if err != nil {
		logger.WithError(err).Fatal("parse -start")
	}
	req := itinerary.TripRequest{
		Destination:     *destination,
		StayingPeriod:   *days,
		StartDate:       startDate,
		EndDate:         startDate.AddDate(0, 0, *days-1),
		Foods:           splitTags(*foods),
		Personalities:   splitTags(*personalities),
		TravelerName:    "Demo Traveler",
		TravelerAge:     30,
		CurrentLocation: "New York, USA",
	}
	if err := req.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid request")
	}

	prompt, err := itinerary.BuildPrompt(req)
	if err != nil {
		logger.WithError(err).Fatal("build prompt")
	}
	if *printPrompt {
		fmt.Println(prompt)
		fmt.Println(strings.Repeat("-", 60))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout)
	defer cancel()

	completer, err := ai.New(ctx, ai.Settings{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey(),
		Model:    cfg.LLM.Model(),
		ProxyURL: cfg.LLM.ProxyURL,
	})
	if err != nil {
		logger.WithError(err).Fatal("completion provider")
	}

	started := time.Now()
	raw, err := completer.Complete(ctx, types.Session{UID: "demo", Token: *token}, prompt)
	if err != nil {
		logger.WithError(err).Fatal("complete")
	}

	it, err := itinerary.ParseResponse(raw, req.StayingPeriod)
	if err != nil {
		logger.WithField("error_kind", itinerary.Kind(err)).WithError(err).Error("response rejected")
		fmt.Println(raw)
		os.Exit(1)
	}

	out, _ := json.MarshalIndent(it, "", "  ")
	fmt.Println(string(out))
	logger.WithField("duration_ms", time.Since(started).Milliseconds()).Info("itinerary accepted")
}

func splitTags(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
