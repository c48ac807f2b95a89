package aiusage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_usage persistence. Rows hold one counter per user and
// the month it was last reset in; a stale month reads as a full allowance.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseToken atomically checks the monthly quota and deducts one token.
// It resets the counter to limit when last_reset_month is behind month.
// Returns ErrInsufficientTokens when 0 rows are updated (quota exhausted or user absent).
func (s *Store) UseToken(ctx context.Context, uid, month string, limit int) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, month, limit, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// Refund gives back one token consumed in month, never exceeding limit.
func (s *Store) Refund(ctx context.Context, uid, month string, limit int) error {
	_, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET tokens_remaining = LEAST(tokens_remaining + 1, $2)
		WHERE uid = $3 AND last_reset_month = $1
	`, month, limit, uid)
	return err
}

// EnsureUser inserts a row with the full allowance; existing rows are left alone.
func (s *Store) EnsureUser(ctx context.Context, uid, month string, limit int) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, limit, month)
	return err
}

// Remaining reads the counter without modifying it.
func (s *Store) Remaining(ctx context.Context, uid, month string, limit int) (int, error) {
	var remaining int
	var lastMonth string
	err := s.db.QueryRow(ctx, `SELECT tokens_remaining, last_reset_month FROM ai_usage WHERE uid = $1`, uid).
		Scan(&remaining, &lastMonth)
	if errors.Is(err, pgx.ErrNoRows) {
		return limit, nil
	}
	if err != nil {
		return 0, err
	}
	if lastMonth < month {
		return limit, nil
	}
	return remaining, nil
}
