// README: Packing list shape and the default checklist offered for new trips.
package packing

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("packing item not found")
	ErrBadRequest = errors.New("bad request")
)

const (
	MaxItems      = 200
	MaxItemLength = 200
)

type Item struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// List is the checklist attached to one trip. A zero ID means it was never stored.
type List struct {
	ID        string    `json:"id,omitempty"`
	TripID    string    `json:"tripId"`
	OwnerID   string    `json:"-"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

func (l *List) Saved() bool { return l.ID != "" }

var DefaultItems = []string{
	"Passport / ID",
	"Phone charger",
	"Medications",
	"Toiletries",
	"Comfortable shoes",
	"Weather-appropriate clothing",
	"Sunglasses",
	"Reusable water bottle",
	"Travel adapter",
	"Cash / Credit cards",
	"Travel insurance documents",
	"Emergency contacts list",
}
