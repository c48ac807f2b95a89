// README: Packing list store backed by PostgreSQL (items kept as JSONB).
package packing

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Get(ctx context.Context, owner, tripID string) (*List, error)
	Upsert(ctx context.Context, l *List) error
	Delete(ctx context.Context, owner, tripID string) error
}

type Store struct {
	db *pgxpool.Pool
}

var _ Repository = (*Store)(nil)

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Get returns ErrNotFound when no list was stored for the trip.
func (s *Store) Get(ctx context.Context, owner, tripID string) (*List, error) {
	var l List
	err := s.db.QueryRow(ctx, `
		SELECT id, trip_id, user_id, items, updated_at
		FROM packing_lists
		WHERE trip_id = $1 AND user_id = $2`, tripID, owner,
	).Scan(&l.ID, &l.TripID, &l.OwnerID, &l.Items, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Upsert writes the whole list; the trip_id unique key keeps one list per trip.
func (s *Store) Upsert(ctx context.Context, l *List) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO packing_lists (id, trip_id, user_id, items, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (trip_id) DO UPDATE
		SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at
		RETURNING id`,
		l.ID, l.TripID, l.OwnerID, l.Items, l.UpdatedAt,
	).Scan(&l.ID)
}

func (s *Store) Delete(ctx context.Context, owner, tripID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM packing_lists WHERE trip_id = $1 AND user_id = $2`, tripID, owner)
	return err
}
