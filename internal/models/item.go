package models

import "time"

type Item struct {
	ID               string    `json:"id"`
	WishlistID       string    `json:"wishlist_id"`
	Title            string    `json:"title"`
	URL              string    `json:"url"`
	ImageURL         string    `json:"image_url"`
	PriceCents       *int64    `json:"price_cents"`
	TargetCents      *int64    `json:"target_cents"`
	ContributedCents int64     `json:"total_contributed_cents"`
	IsUnavailable    bool      `json:"is_unavailable"`
	Position         int       `json:"position"`
	CreatedAt        time.Time `json:"created_at"`
}

// GroupFundable reports whether the item accepts contributions instead of a
// single reservation.
func (i Item) GroupFundable() bool {
	return i.TargetCents != nil && *i.TargetCents > 0
}

// ItemFields are the owner-editable fields of an item.
type ItemFields struct {
	Title         string
	URL           string
	ImageURL      string
	PriceCents    *int64
	TargetCents   *int64
	IsUnavailable bool
}

// ItemView is an item as seen by one viewer. ReservedBy is only set when
// the viewer is the reserver; Comments only when the viewer owns the list.
type ItemView struct {
	Item
	Reserved   bool      `json:"reserved"`
	ReservedBy string    `json:"reserved_by,omitempty"`
	Comments   []Comment `json:"comments,omitempty"`
}
