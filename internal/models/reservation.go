package models

import "time"

// Reservation is the single live claim on an item. Only one row may exist
// per item; unreserving deletes the row.
type Reservation struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	Nickname   string    `json:"reserved_by_nickname"`
	UserID     *string   `json:"-"`
	ReservedAt time.Time `json:"reserved_at"`
}
