package services

import (
	"context"

	"wishlyBack/internal/models"
)

// Store interfaces over the persistence layer. The concrete implementations
// live in internal/repositories; tests substitute in-memory fakes.

type WishlistStore interface {
	CreateWishlist(ctx context.Context, w models.Wishlist) (models.Wishlist, error)
	GetBySlug(ctx context.Context, slug string) (models.Wishlist, error)
	GetByID(ctx context.Context, id string) (models.Wishlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Wishlist, error)
	UpdateWishlist(ctx context.Context, id string, patch models.WishlistPatch) error
	OwnerName(ctx context.Context, listID string) (string, error)
}

type ItemStore interface {
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	GetItem(ctx context.Context, id string) (models.Item, error)
	UpdateItem(ctx context.Context, id string, fields models.ItemFields) error
	DeleteItem(ctx context.Context, id string) error
	ReorderItems(ctx context.Context, wishlistID string, orderedIDs []string) error
	ListProjection(ctx context.Context, wishlistID string, viewer models.Actor, viewerNickname string) ([]models.ItemView, error)
}

type ReservationStore interface {
	Reserve(ctx context.Context, res models.Reservation) (models.Reservation, error)
	GetByItem(ctx context.Context, itemID string) (models.Reservation, error)
	Delete(ctx context.Context, reservationID string) error
}

type ContributionStore interface {
	Contribute(ctx context.Context, c models.Contribution) (models.Contribution, error)
}

type CommentStore interface {
	AddComment(ctx context.Context, c models.Comment) (models.Comment, error)
	ListByWishlist(ctx context.Context, wishlistID string) (map[string][]models.Comment, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	CreateSession(ctx context.Context, s models.Session) error
	GetSessionByToken(ctx context.Context, token string) (models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}
