// README: Packing list service (defaults, item edits, trip ownership).
package packing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TripChecker confirms owner can see tripID; it returns the trip module's not-found error otherwise.
type TripChecker interface {
	Exists(ctx context.Context, owner, tripID string) error
}

type Service struct {
	store Repository
	trips TripChecker
	now   func() time.Time
}

func NewService(store Repository, trips TripChecker) *Service {
	return &Service{store: store, trips: trips, now: time.Now}
}

// Get returns the stored list, or an unsaved list of DefaultItems.
func (s *Service) Get(ctx context.Context, owner, tripID string) (*List, error) {
	if err := s.trips.Exists(ctx, owner, tripID); err != nil {
		return nil, err
	}
	l, err := s.store.Get(ctx, owner, tripID)
	if errors.Is(err, ErrNotFound) {
		return defaultList(owner, tripID), nil
	}
	return l, err
}

// Replace stores items as the full list. Items without an id get one.
func (s *Service) Replace(ctx context.Context, owner, tripID string, items []Item) (*List, error) {
	if len(items) > MaxItems {
		return nil, fmt.Errorf("%w: at most %d items", ErrBadRequest, MaxItems)
	}
	cleaned := make([]Item, 0, len(items))
	for _, it := range items {
		text, err := cleanText(it.Text)
		if err != nil {
			return nil, err
		}
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		it.Text = text
		cleaned = append(cleaned, it)
	}
	return s.edit(ctx, owner, tripID, func(l *List) error {
		l.Items = cleaned
		return nil
	})
}

func (s *Service) AddItem(ctx context.Context, owner, tripID, text string) (*List, error) {
	text, err := cleanText(text)
	if err != nil {
		return nil, err
	}
	return s.edit(ctx, owner, tripID, func(l *List) error {
		if len(l.Items) >= MaxItems {
			return fmt.Errorf("%w: at most %d items", ErrBadRequest, MaxItems)
		}
		l.Items = append(l.Items, Item{ID: uuid.NewString(), Text: text})
		return nil
	})
}

func (s *Service) ToggleItem(ctx context.Context, owner, tripID, itemID string) (*List, error) {
	return s.edit(ctx, owner, tripID, func(l *List) error {
		for i := range l.Items {
			if l.Items[i].ID == itemID {
				l.Items[i].Checked = !l.Items[i].Checked
				return nil
			}
		}
		return ErrNotFound
	})
}

func (s *Service) RemoveItem(ctx context.Context, owner, tripID, itemID string) (*List, error) {
	return s.edit(ctx, owner, tripID, func(l *List) error {
		for i := range l.Items {
			if l.Items[i].ID == itemID {
				l.Items = append(l.Items[:i], l.Items[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// Reset drops the stored list so Get falls back to the defaults.
func (s *Service) Reset(ctx context.Context, owner, tripID string) error {
	if err := s.trips.Exists(ctx, owner, tripID); err != nil {
		return err
	}
	return s.store.Delete(ctx, owner, tripID)
}

func (s *Service) edit(ctx context.Context, owner, tripID string, apply func(*List) error) (*List, error) {
	l, err := s.Get(ctx, owner, tripID)
	if err != nil {
		return nil, err
	}
	if err := apply(l); err != nil {
		return nil, err
	}
	if !l.Saved() {
		l.ID = uuid.NewString()
	}
	l.UpdatedAt = s.now().UTC()
	if err := s.store.Upsert(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func defaultList(owner, tripID string) *List {
	// Stable ids so an item from an unsaved default list can be toggled or removed.
	items := make([]Item, len(DefaultItems))
	for i, text := range DefaultItems {
		items[i] = Item{ID: fmt.Sprintf("default-%d", i+1), Text: text}
	}
	return &List{TripID: tripID, OwnerID: owner, Items: items}
}

func cleanText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: item text is required", ErrBadRequest)
	}
	if len(text) > MaxItemLength {
		return "", fmt.Errorf("%w: item text longer than %d characters", ErrBadRequest, MaxItemLength)
	}
	return text, nil
}
