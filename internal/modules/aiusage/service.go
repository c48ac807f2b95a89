package aiusage

import (
	"context"
	"errors"
	"time"
)

type Repository interface {
	UseToken(ctx context.Context, uid, month string, limit int) error
	Refund(ctx context.Context, uid, month string, limit int) error
	EnsureUser(ctx context.Context, uid, month string, limit int) error
	Remaining(ctx context.Context, uid, month string, limit int) (int, error)
}

// Service meters itinerary generations per user per calendar month (UTC).
type Service struct {
	store Repository
	limit int
	now   func() time.Time
}

// NewService creates a Service; a non-positive limit falls back to DefaultMonthlyTrips.
func NewService(store Repository, limit int) *Service {
	if limit <= 0 {
		limit = DefaultMonthlyTrips
	}
	return &Service{store: store, limit: limit, now: time.Now}
}

func (s *Service) month() string {
	return s.now().UTC().Format(monthLayout)
}

// UseToken deducts one generation from the user's monthly allowance.
// If the user row does not exist yet it is initialised and the token is immediately consumed.
// Returns ErrInsufficientTokens when the quota for the current month is exhausted.
func (s *Service) UseToken(ctx context.Context, uid string) error {
	month := s.month()
	err := s.store.UseToken(ctx, uid, month, s.limit)
	if !errors.Is(err, ErrInsufficientTokens) {
		return err
	}

	// Row may be missing: try to create it, then retry the deduction once.
	if initErr := s.store.EnsureUser(ctx, uid, month, s.limit); initErr != nil {
		return initErr
	}
	return s.store.UseToken(ctx, uid, month, s.limit)
}

// Refund returns a token taken by UseToken when the generation it paid for failed.
func (s *Service) Refund(ctx context.Context, uid string) error {
	return s.store.Refund(ctx, uid, s.month(), s.limit)
}

func (s *Service) Usage(ctx context.Context, uid string) (Usage, error) {
	month := s.month()
	remaining, err := s.store.Remaining(ctx, uid, month, s.limit)
	if err != nil {
		return Usage{}, err
	}
	return Usage{Month: month, Limit: s.limit, Remaining: remaining}, nil
}
