// README: Benchmark runner; checks backing services and scores provider output against the itinerary validator.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"trippo/internal/config"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench, err := NewRunner(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	counts := map[string]int{}
	kinds := map[string]int{}
	for _, r := range results {
		counts[r.Status]++
		if r.Kind != "" {
			kinds[r.Kind]++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", counts["PASS"], counts["FAIL"], counts["SKIP"])
	for kind, n := range kinds {
		fmt.Printf("  %-24s %d\n", kind, n)
	}

	if counts["FAIL"] > 0 {
		os.Exit(1)
	}
}

type Config struct {
	App          config.Config
	DSN          string
	RedisAddr    string
	Cases        int
	Concurrency  int
	Token        string
	SkipProvider bool
	Timeout      time.Duration
}

func loadConfig() Config {
	app, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	cfg := Config{App: app}
	flag.StringVar(&cfg.DSN, "dsn", app.DB.DSN, "Postgres DSN (empty skips the check)")
	flag.StringVar(&cfg.RedisAddr, "redis", app.Redis.Addr, "Redis address (empty skips the check)")
	flag.IntVar(&cfg.Cases, "cases", len(benchTrips), "number of sample trips to generate")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("TRIPPO_BENCH_CONCURRENCY", 2), "parallel provider calls")
	flag.StringVar(&cfg.Token, "token", os.Getenv("TRIPPO_BENCH_TOKEN"), "session token for the proxy provider")
	flag.BoolVar(&cfg.SkipProvider, "skip-provider", envOrDefaultBool("TRIPPO_BENCH_SKIP_PROVIDER", false), "only check backing services")
	flag.DurationVar(&cfg.Timeout, "timeout", 10*time.Minute, "total timeout")
	flag.Parse()
	if cfg.Cases > len(benchTrips) {
		cfg.Cases = len(benchTrips)
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return cfg
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		if n > 0 {
			return n
		}
	}
	return def
}
