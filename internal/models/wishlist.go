package models

import "time"

type Wishlist struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DeadlineAt  *time.Time `json:"deadline_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// WishlistPatch is a partial update of mutable wishlist fields. Nil means
// "leave unchanged"; a pointer to the zero value clears the field.
type WishlistPatch struct {
	Title         *string
	Description   *string
	DeadlineAt    *time.Time
	ClearDeadline bool
}

// WishlistView is the visibility-filtered projection returned to a viewer.
// Items are ordered by position. Owner-only data (comments) and
// reserver-only data (ReservedBy) are populated by the read path depending
// on who is asking, never by the presentation layer.
type WishlistView struct {
	Wishlist
	OwnerName string     `json:"owner_name,omitempty"`
	IsOwner   bool       `json:"is_owner"`
	Items     []ItemView `json:"items"`
}
