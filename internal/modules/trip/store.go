// README: Trip store backed by PostgreSQL.
package trip

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the persistence boundary used by Service.
type Repository interface {
	Create(ctx context.Context, t *Trip) error
	Get(ctx context.Context, owner, id string) (*Trip, error)
	List(ctx context.Context, owner string, f Filter) ([]Trip, error)
	Update(ctx context.Context, t *Trip) error
	Delete(ctx context.Context, owner, id string) error
}

type Store struct {
	db *pgxpool.Pool
}

var _ Repository = (*Store)(nil)

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const tripColumns = `
	id, user_id, title, destination, staying_period, name, age, current_location,
	start_date, end_date, foods, personalities, itinerary,
	is_saved, is_favorite, status, created_at, updated_at`

func (s *Store) Create(ctx context.Context, t *Trip) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO trips (`+tripColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		t.ID, t.OwnerID, t.Title, t.Destination, t.StayingPeriod, t.TravelerName, t.TravelerAge, t.CurrentLocation,
		t.StartDate, t.EndDate, t.Foods, t.Personalities, t.Itinerary,
		t.IsSaved, t.IsFavorite, string(t.Status), t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, owner, id string) (*Trip, error) {
	row := s.db.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1 AND user_id = $2`, id, owner)
	t, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// List returns owner's trips, newest first.
func (s *Store) List(ctx context.Context, owner string, f Filter) ([]Trip, error) {
	var status *string
	if f.Status != nil {
		v := string(*f.Status)
		status = &v
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+tripColumns+`
		FROM trips
		WHERE user_id = $1
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::boolean IS NULL OR is_favorite = $3)
		  AND ($4::boolean IS NULL OR is_saved = $4)
		ORDER BY created_at DESC`,
		owner, status, f.Favorite, f.Saved,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}
	return trips, rows.Err()
}

// Update persists the mutable fields of t.
func (s *Store) Update(ctx context.Context, t *Trip) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE trips
		SET title = $1, is_saved = $2, is_favorite = $3, status = $4, updated_at = $5
		WHERE id = $6 AND user_id = $7`,
		t.Title, t.IsSaved, t.IsFavorite, string(t.Status), t.UpdatedAt, t.ID, t.OwnerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, owner, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanTrip(row pgx.Row) (*Trip, error) {
	var t Trip
	var status string
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Destination, &t.StayingPeriod, &t.TravelerName, &t.TravelerAge, &t.CurrentLocation,
		&t.StartDate, &t.EndDate, &t.Foods, &t.Personalities, &t.Itinerary,
		&t.IsSaved, &t.IsFavorite, &status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Status = Status(status)
	return &t, nil
}
