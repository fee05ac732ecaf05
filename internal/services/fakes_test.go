package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"wishlyBack/internal/models"
)

// fakeStores is a mutex-guarded in-memory stand-in for the repositories. It
// enforces the same atomic contracts: one live reservation per item, the
// contribution cap, and the delete guard.
type fakeStores struct {
	mu            sync.Mutex
	wishlists     map[string]models.Wishlist
	items         map[string]models.Item
	reservations  map[string]models.Reservation // keyed by item id
	contributions []models.Contribution
	comments      []models.Comment
	users         map[string]models.User
	sessions      map[string]models.Session // keyed by refresh token
	ownerNames    map[string]string // list id -> display name

	failSlugs int // CreateWishlist rejects this many calls first
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		wishlists:    make(map[string]models.Wishlist),
		items:        make(map[string]models.Item),
		reservations: make(map[string]models.Reservation),
		users:        make(map[string]models.User),
		sessions:     make(map[string]models.Session),
		ownerNames:   make(map[string]string),
	}
}

func (f *fakeStores) CreateWishlist(_ context.Context, w models.Wishlist) (models.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSlugs > 0 {
		f.failSlugs--
		return models.Wishlist{}, models.ErrSlugExhausted
	}
	for _, existing := range f.wishlists {
		if existing.Slug == w.Slug {
			return models.Wishlist{}, models.ErrSlugExhausted
		}
	}
	w.CreatedAt = time.Now()
	w.UpdatedAt = w.CreatedAt
	f.wishlists[w.ID] = w
	return w, nil
}

func (f *fakeStores) GetBySlug(_ context.Context, slug string) (models.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.wishlists {
		if w.Slug == slug {
			return w, nil
		}
	}
	return models.Wishlist{}, models.ErrNotFound
}

func (f *fakeStores) GetByID(_ context.Context, id string) (models.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wishlists[id]
	if !ok {
		return models.Wishlist{}, models.ErrNotFound
	}
	return w, nil
}

func (f *fakeStores) ListByOwner(_ context.Context, ownerID string) ([]models.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Wishlist
	for _, w := range f.wishlists {
		if w.OwnerID == ownerID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStores) UpdateWishlist(_ context.Context, id string, patch models.WishlistPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.wishlists[id]
	if !ok {
		return models.ErrNotFound
	}
	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.Description != nil {
		w.Description = *patch.Description
	}
	if patch.ClearDeadline {
		w.DeadlineAt = nil
	} else if patch.DeadlineAt != nil {
		w.DeadlineAt = patch.DeadlineAt
	}
	w.UpdatedAt = time.Now()
	f.wishlists[id] = w
	return nil
}

func (f *fakeStores) OwnerName(_ context.Context, listID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ownerNames[listID], nil
}

func (f *fakeStores) CreateItem(_ context.Context, item models.Item) (models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.wishlists[item.WishlistID]; !ok {
		return models.Item{}, models.ErrNotFound
	}
	pos := 0
	for _, it := range f.items {
		if it.WishlistID == item.WishlistID && it.Position >= pos {
			pos = it.Position + 1
		}
	}
	item.Position = pos
	item.CreatedAt = time.Now()
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeStores) GetItem(_ context.Context, id string) (models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return models.Item{}, models.ErrNotFound
	}
	return item, nil
}

func (f *fakeStores) UpdateItem(_ context.Context, id string, fields models.ItemFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return models.ErrNotFound
	}
	item.Title = fields.Title
	item.URL = fields.URL
	item.ImageURL = fields.ImageURL
	item.PriceCents = fields.PriceCents
	item.TargetCents = fields.TargetCents
	item.IsUnavailable = fields.IsUnavailable
	f.items[id] = item
	return nil
}

func (f *fakeStores) DeleteItem(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return models.ErrNotFound
	}
	if item.ContributedCents > 0 {
		return models.ErrHasContributions
	}
	delete(f.items, id)
	delete(f.reservations, id)
	return nil
}

func (f *fakeStores) ReorderItems(_ context.Context, wishlistID string, orderedIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	current := make(map[string]bool)
	for _, it := range f.items {
		if it.WishlistID == wishlistID {
			current[it.ID] = true
		}
	}
	if len(orderedIDs) != len(current) {
		return models.ErrInvalidOrder
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !current[id] || seen[id] {
			return models.ErrInvalidOrder
		}
		seen[id] = true
	}
	for pos, id := range orderedIDs {
		it := f.items[id]
		it.Position = pos
		f.items[id] = it
	}
	return nil
}

func (f *fakeStores) ListProjection(_ context.Context, wishlistID string, viewer models.Actor, viewerNickname string) ([]models.ItemView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ItemView
	for _, it := range f.items {
		if it.WishlistID != wishlistID {
			continue
		}
		view := models.ItemView{Item: it}
		if res, ok := f.reservations[it.ID]; ok {
			view.Reserved = true
			if res.UserID != nil {
				if viewer.Authenticated() && viewer.UserID == *res.UserID {
					view.ReservedBy = res.Nickname
				}
			} else if viewerNickname != "" && viewerNickname == res.Nickname {
				view.ReservedBy = res.Nickname
			}
		}
		out = append(out, view)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeStores) Reserve(_ context.Context, res models.Reservation) (models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.reservations[res.ItemID]; taken {
		return models.Reservation{}, models.ErrAlreadyReserved
	}
	res.ReservedAt = time.Now()
	f.reservations[res.ItemID] = res
	return res, nil
}

func (f *fakeStores) GetByItem(_ context.Context, itemID string) (models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res, ok := f.reservations[itemID]
	if !ok {
		return models.Reservation{}, models.ErrNotReserved
	}
	return res, nil
}

func (f *fakeStores) Delete(_ context.Context, reservationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for itemID, res := range f.reservations {
		if res.ID == reservationID {
			delete(f.reservations, itemID)
			return nil
		}
	}
	return models.ErrNotReserved
}

func (f *fakeStores) Contribute(_ context.Context, c models.Contribution) (models.Contribution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[c.ItemID]
	if !ok {
		return models.Contribution{}, models.ErrNotFound
	}
	if item.TargetCents == nil || *item.TargetCents <= 0 {
		return models.Contribution{}, models.ErrNoFundingTarget
	}
	if item.ContributedCents+c.AmountCents > *item.TargetCents {
		return models.Contribution{}, models.ErrExceedsTarget
	}
	item.ContributedCents += c.AmountCents
	f.items[c.ItemID] = item
	c.ContributedAt = time.Now()
	f.contributions = append(f.contributions, c)
	return c, nil
}

func (f *fakeStores) AddComment(_ context.Context, c models.Comment) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.CreatedAt = time.Now()
	f.comments = append(f.comments, c)
	return c, nil
}

func (f *fakeStores) ListByWishlist(_ context.Context, wishlistID string) (map[string][]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]models.Comment)
	for _, c := range f.comments {
		item, ok := f.items[c.ItemID]
		if !ok || item.WishlistID != wishlistID {
			continue
		}
		out[c.ItemID] = append(out[c.ItemID], c)
	}
	return out, nil
}

func (f *fakeStores) CreateUser(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return models.User{}, models.ErrDuplicateEmail
		}
	}
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeStores) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, models.ErrNoRecord
}

func (f *fakeStores) GetUserByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return models.User{}, models.ErrNoRecord
	}
	return u, nil
}

func (f *fakeStores) CreateSession(_ context.Context, s models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.RefreshToken] = s
	return nil
}

func (f *fakeStores) GetSessionByToken(_ context.Context, token string) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return models.Session{}, models.ErrNoRecord
	}
	return s, nil
}

func (f *fakeStores) DeleteSession(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

// recordingNotifier captures change signals for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	slugs []string
}

func (n *recordingNotifier) WishlistChanged(_ context.Context, slug string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.slugs = append(n.slugs, slug)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.slugs)
}
