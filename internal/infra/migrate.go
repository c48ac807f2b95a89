// README: Applies embedded goose migrations against the pool's database.
package infra

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"trippo/migrations"
)

// Migrate runs every pending migration and returns the number applied.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	// goose needs database/sql; borrow the pool's config instead of a second DSN.
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("run migrations: %w", err)
	}
	return len(results), nil
}
