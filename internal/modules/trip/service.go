// README: Trip service implements ownership checks, saving and status transitions.
package trip

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("trip not found")
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidState = errors.New("invalid status transition")
)

const maxTitleLength = 120

type Service struct {
	store Repository
	now   func() time.Time
}

func NewService(store Repository) *Service {
	return &Service{store: store, now: time.Now}
}

// Create assigns identity and timestamps, then persists t.
func (s *Service) Create(ctx context.Context, t *Trip) error {
	if t.OwnerID == "" || len(t.Itinerary.Days) == 0 {
		return ErrBadRequest
	}
	now := s.now().UTC()
	t.ID = uuid.NewString()
	t.Status = StatusUpcoming
	t.CreatedAt = now
	t.UpdatedAt = now
	return s.store.Create(ctx, t)
}

func (s *Service) Get(ctx context.Context, owner, id string) (*Trip, error) {
	if owner == "" {
		return nil, ErrBadRequest
	}
	// Malformed ids cannot match a row; skip the round trip and the uuid cast error.
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, owner, id)
}

func (s *Service) List(ctx context.Context, owner string, f Filter) ([]Trip, error) {
	if owner == "" {
		return nil, ErrBadRequest
	}
	return s.store.List(ctx, owner, f)
}

// Save marks the trip as kept by the user, optionally renaming it.
func (s *Service) Save(ctx context.Context, owner, id, title string) (*Trip, error) {
	title = strings.TrimSpace(title)
	if len(title) > maxTitleLength {
		return nil, ErrBadRequest
	}
	return s.mutate(ctx, owner, id, func(t *Trip) error {
		if title != "" {
			t.Title = title
		}
		t.IsSaved = true
		return nil
	})
}

func (s *Service) SetFavorite(ctx context.Context, owner, id string, favorite bool) (*Trip, error) {
	return s.mutate(ctx, owner, id, func(t *Trip) error {
		t.IsFavorite = favorite
		return nil
	})
}

func (s *Service) SetStatus(ctx context.Context, owner, id string, to Status) (*Trip, error) {
	if _, ok := ParseStatus(string(to)); !ok {
		return nil, ErrBadRequest
	}
	return s.mutate(ctx, owner, id, func(t *Trip) error {
		if !CanTransition(t.Status, to) {
			return ErrInvalidState
		}
		t.Status = to
		return nil
	})
}

func (s *Service) Delete(ctx context.Context, owner, id string) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, owner, id)
}

func (s *Service) mutate(ctx context.Context, owner, id string, apply func(*Trip) error) (*Trip, error) {
	t, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if err := apply(t); err != nil {
		return nil, err
	}
	t.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Exists reports ErrNotFound unless owner has a trip with id.
func (s *Service) Exists(ctx context.Context, owner, id string) error {
	_, err := s.Get(ctx, owner, id)
	return err
}
