// README: TripPlanner turns onboarding answers into a persisted, validated itinerary.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"trippo/internal/ai"
	"trippo/internal/log"
	"trippo/internal/modules/generation"
	"trippo/internal/modules/itinerary"
	"trippo/internal/modules/trip"
	"trippo/internal/types"
)

// ErrUnauthenticated is returned when the session carries no user.
var ErrUnauthenticated = errors.New("unauthenticated")

type Quota interface {
	UseToken(ctx context.Context, uid string) error
	Refund(ctx context.Context, uid string) error
}

type Locker interface {
	Acquire(ctx context.Context, uid string) (*generation.Lock, error)
	Release(ctx context.Context, lock *generation.Lock) error
}

type VenueFinder interface {
	VenueHints(ctx context.Context, destination string, foods []string) (map[string][]string, error)
}

type TripCreator interface {
	Create(ctx context.Context, t *trip.Trip) error
}

// PlannerOptions bounds a single Create call.
type PlannerOptions struct {
	// MaxRetries is the number of extra provider calls after a transport failure.
	MaxRetries uint64
	// Timeout covers every provider attempt together.
	Timeout     time.Duration
	BackoffBase time.Duration
}

// TripPlanner orchestrates quota, locking, venue lookup, prompting and persistence.
type TripPlanner struct {
	completer ai.Completer
	quota     Quota
	locker    Locker
	venues    VenueFinder // optional
	trips     TripCreator
	logger    *log.Logger
	opts      PlannerOptions
}

func NewTripPlanner(completer ai.Completer, quota Quota, locker Locker, venues VenueFinder, trips TripCreator, logger *log.Logger, opts PlannerOptions) *TripPlanner {
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = 500 * time.Millisecond
	}
	return &TripPlanner{
		completer: completer,
		quota:     quota,
		locker:    locker,
		venues:    venues,
		trips:     trips,
		logger:    logger,
		opts:      opts,
	}
}

// Create generates an itinerary for req and stores it as an unsaved upcoming trip.
// Nothing is persisted and the quota token is refunded when any step fails.
func (p *TripPlanner) Create(ctx context.Context, session types.Session, req itinerary.TripRequest) (*trip.Trip, error) {
	if !session.Valid() {
		return nil, ErrUnauthenticated
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if err := p.quota.UseToken(ctx, session.UID); err != nil {
		return nil, err
	}
	lock, err := p.locker.Acquire(ctx, session.UID)
	if err != nil {
		p.refund(ctx, session.UID)
		return nil, err
	}
	defer func() {
		if err := p.locker.Release(context.WithoutCancel(ctx), lock); err != nil {
			p.logger.WithError(err).WithField("uid", session.UID).Warn("release generation lock")
		}
	}()

	t, err := p.generate(ctx, session, req)
	if err != nil {
		p.refund(ctx, session.UID)
		return nil, err
	}
	return t, nil
}

func (p *TripPlanner) generate(ctx context.Context, session types.Session, req itinerary.TripRequest) (*trip.Trip, error) {
	req.Venues = p.venueHints(ctx, req)

	prompt, err := itinerary.BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := p.complete(ctx, session, req, prompt)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	it, err := itinerary.ParseResponse(raw, req.StayingPeriod)
	if err != nil {
		p.logger.LogGeneration(session.UID, req.Destination, req.StayingPeriod, 0, itinerary.Kind(err), time.Since(started).Milliseconds())
		return nil, err
	}

	t := trip.FromRequest(session.UID, req, it)
	if err := p.trips.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("store trip: %w", err)
	}
	return t, nil
}

// complete calls the provider, retrying transport failures with exponential backoff.
func (p *TripPlanner) complete(ctx context.Context, session types.Session, req itinerary.TripRequest, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	var raw string
	attempt := 0
	backoff := retry.WithMaxRetries(p.opts.MaxRetries, retry.NewExponential(p.opts.BackoffBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		started := time.Now()
		out, err := p.completer.Complete(ctx, session, prompt)
		if err != nil {
			p.logger.LogGeneration(session.UID, req.Destination, req.StayingPeriod, attempt, itinerary.Kind(itinerary.ErrTransportFailure), time.Since(started).Milliseconds())
			if errors.Is(err, ai.ErrTransport) {
				return retry.RetryableError(err)
			}
			return err
		}
		p.logger.LogGeneration(session.UID, req.Destination, req.StayingPeriod, attempt, "", time.Since(started).Milliseconds())
		raw = out
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", itinerary.ErrTransportFailure, err)
	}
	return raw, nil
}

// venueHints is best effort: lookup failures are logged and generation continues.
func (p *TripPlanner) venueHints(ctx context.Context, req itinerary.TripRequest) map[string][]string {
	if p.venues == nil || len(req.Foods) == 0 {
		return req.Venues
	}
	hints, err := p.venues.VenueHints(ctx, req.Destination, req.Foods)
	if err != nil {
		p.logger.WithError(err).WithField("destination", req.Destination).Warn("venue lookup failed")
	}
	if len(hints) == 0 {
		return req.Venues
	}
	return hints
}

func (p *TripPlanner) refund(ctx context.Context, uid string) {
	if err := p.quota.Refund(context.WithoutCancel(ctx), uid); err != nil {
		p.logger.WithError(err).WithField("uid", uid).Error("refund generation token")
	}
}
