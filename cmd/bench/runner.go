package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"trippo/internal/ai"
	"trippo/internal/modules/itinerary"
	"trippo/internal/types"
)

type Runner struct {
	cfg       Config
	completer ai.Completer
}

type Result struct {
	Name    string
	Status  string
	Kind    string
	Latency time.Duration
	Note    string
}

type benchTrip struct {
	Destination   string
	Days          int
	Month         time.Month
	Foods         []string
	Personalities []string
}

// benchTrips covers short and long stays, seasonal months and the event-driven personalities.
var benchTrips = []benchTrip{
	{"Paris, France", 3, time.June, []string{"Pizza"}, []string{"Foodie"}},
	{"Tokyo, Japan", 5, time.April, []string{"Sushi", "Ramen"}, []string{"Photographer", "Local Culture"}},
	{"Liverpool, UK", 2, time.October, nil, []string{"Sports Fan"}},
	{"Reykjavik, Iceland", 4, time.December, []string{itinerary.LocalFoodTag}, []string{"Adventurer"}},
	{"New Orleans, USA", 3, time.February, []string{"Seafood", itinerary.LocalFoodTag}, []string{"Concert Lover"}},
	{"Marrakech, Morocco", 1, time.March, []string{"Tagine"}, []string{"Art Lover"}},
	{"Lisbon, Portugal", 7, time.September, []string{"Pastries"}, []string{"Foodie", "Photographer"}},
}

func NewRunner(ctx context.Context, cfg Config) (*Runner, error) {
	r := &Runner{cfg: cfg}
	if cfg.SkipProvider {
		return r, nil
	}
	completer, err := ai.New(ctx, ai.Settings{
		Provider: cfg.App.LLM.Provider,
		APIKey:   cfg.App.LLM.APIKey(),
		Model:    cfg.App.LLM.Model(),
		ProxyURL: cfg.App.LLM.ProxyURL,
	})
	if err != nil {
		return nil, err
	}
	r.completer = completer
	return r, nil
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	results := []Result{r.checkPostgres(ctx), r.checkRedis(ctx)}
	printResults(results...)

	if r.completer == nil {
		skip := Result{Name: "Provider: sample trips", Status: "SKIP", Note: "skip-provider"}
		printResults(skip)
		return append(results, skip)
	}

	out := make([]Result, r.cfg.Cases)
	sem := make(chan struct{}, r.cfg.Concurrency)
	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Cases; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = r.runTrip(ctx, benchTrips[i])
		}(i)
	}
	wg.Wait()
	printResults(out...)
	return append(results, out...)
}

func (r *Runner) checkPostgres(ctx context.Context) Result {
	res := Result{Name: "Env: Postgres connect"}
	if r.cfg.DSN == "" {
		res.Status, res.Note = "SKIP", "dsn not configured"
		return res
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	start := time.Now()
	db, err := pgxpool.New(ctx, r.cfg.DSN)
	if err == nil {
		defer db.Close()
		err = db.Ping(ctx)
	}
	return finish(res, start, err)
}

func (r *Runner) checkRedis(ctx context.Context) Result {
	res := Result{Name: "Env: Redis connect"}
	if r.cfg.RedisAddr == "" {
		res.Status, res.Note = "SKIP", "redis not configured"
		return res
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	client := redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	defer client.Close()
	start := time.Now()
	return finish(res, start, client.Ping(ctx).Err())
}

func (r *Runner) runTrip(ctx context.Context, bt benchTrip) Result {
	res := Result{Name: fmt.Sprintf("Provider: %s, %d days", bt.Destination, bt.Days)}
	start := time.Date(time.Now().Year()+1, bt.Month, 10, 0, 0, 0, 0, time.UTC)
	req := itinerary.TripRequest{
		Destination:     bt.Destination,
		StayingPeriod:   bt.Days,
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, bt.Days-1),
		Foods:           bt.Foods,
		Personalities:   bt.Personalities,
		TravelerName:    "Bench",
		TravelerAge:     35,
		CurrentLocation: "Chicago, USA",
	}
	prompt, err := itinerary.BuildPrompt(req)
	if err != nil {
		return finish(res, time.Now(), err)
	}

	began := time.Now()
	raw, err := r.completer.Complete(ctx, types.Session{UID: "bench", Token: r.cfg.Token}, prompt)
	if err != nil {
		return finish(res, began, fmt.Errorf("%w: %v", itinerary.ErrTransportFailure, err))
	}
	_, err = itinerary.ParseResponse(raw, req.StayingPeriod)
	return finish(res, began, err)
}

func finish(res Result, start time.Time, err error) Result {
	res.Latency = time.Since(start)
	if err != nil {
		res.Status = "FAIL"
		res.Kind = itinerary.Kind(err)
		res.Note = err.Error()
		return res
	}
	res.Status = "PASS"
	return res
}

func printResults(results ...Result) {
	for _, res := range results {
		fmt.Printf("%-5s %s", res.Status, res.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
}
