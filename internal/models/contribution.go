package models

import "time"

// Contribution is an append-only pledge toward a group-fundable item.
// Individual rows are never exposed to the list owner; only the running
// total on the item is.
type Contribution struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	AmountCents   int64     `json:"amount_cents"`
	Nickname      string    `json:"contributed_by_nickname"`
	UserID        *string   `json:"-"`
	ContributedAt time.Time `json:"contributed_at"`
}
