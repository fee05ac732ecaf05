package models

// Actor is the resolved identity of the current request: an authenticated
// wishlist owner or an anonymous guest. Guests carry no stored identity
// beyond the free-text nickname they submit with each action.
type Actor struct {
	UserID string
}

// Guest is the anonymous actor.
var Guest = Actor{}

func (a Actor) Authenticated() bool {
	return a.UserID != ""
}

// Owns reports whether the actor is the owner of the given wishlist.
func (a Actor) Owns(w Wishlist) bool {
	return a.Authenticated() && a.UserID == w.OwnerID
}
