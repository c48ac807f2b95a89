// Package testutil provides shared helpers for DB- and Redis-backed tests.
// Helpers skip the calling test when the backing service is not configured.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"trippo/internal/infra"
)

// NewPool connects to TRIPPO_TEST_DSN, applies migrations and truncates the given tables.
func NewPool(t *testing.T, truncate ...string) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TRIPPO_TEST_DSN")
	if dsn == "" {
		t.Skip("TRIPPO_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := infra.Migrate(ctx, pool); err != nil {
		t.Fatalf("testutil.NewPool: migrate: %v", err)
	}
	for _, table := range truncate {
		if _, err := pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			t.Fatalf("testutil.NewPool: truncate %s: %v", table, err)
		}
	}
	return pool
}

// NewRedis connects to TRIPPO_TEST_REDIS and flushes the selected database.
func NewRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TRIPPO_TEST_REDIS")
	if addr == "" {
		t.Skip("TRIPPO_TEST_REDIS not set; skipping Redis-backed tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.FlushDB(context.Background()).Err(); err != nil {
		client.Close()
		t.Fatalf("testutil.NewRedis: flush: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}
