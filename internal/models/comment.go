package models

import "time"

// Comment is a guest note on an item, readable only by the list owner.
// The guest's display name is stored for the guest's own bookkeeping but is
// never included in the owner projection.
type Comment struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Nickname  string    `json:"-"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
