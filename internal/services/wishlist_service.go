package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"wishlyBack/internal/models"
	"wishlyBack/internal/notify"
	"wishlyBack/utils"
)

// maxSlugAttempts bounds the slug regeneration loop on collisions.
const maxSlugAttempts = 5

type WishlistService struct {
	WishlistRepo WishlistStore
	ItemRepo     ItemStore
	CommentRepo  CommentStore
	Notifier     notify.Notifier
}

func (s *WishlistService) CreateWishlist(ctx context.Context, ownerID, title, description string, deadline *time.Time) (models.Wishlist, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Wishlist{}, models.ErrEmptyTitle
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		w := models.Wishlist{
			ID:          uuid.NewString(),
			OwnerID:     ownerID,
			Slug:        utils.SlugWithToken(title),
			Title:       title,
			Description: description,
			DeadlineAt:  deadline,
		}
		created, err := s.WishlistRepo.CreateWishlist(ctx, w)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, models.ErrSlugExhausted) {
			return models.Wishlist{}, err
		}
	}
	return models.Wishlist{}, models.ErrSlugExhausted
}

func (s *WishlistService) UpdateWishlist(ctx context.Context, listID string, actor models.Actor, patch models.WishlistPatch) error {
	w, err := s.WishlistRepo.GetByID(ctx, listID)
	if err != nil {
		return err
	}
	if !actor.Owns(w) {
		return models.ErrForbidden
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.ErrEmptyTitle
	}
	if err := s.WishlistRepo.UpdateWishlist(ctx, listID, patch); err != nil {
		return err
	}
	s.Notifier.WishlistChanged(ctx, w.Slug)
	return nil
}

func (s *WishlistService) ListByOwner(ctx context.Context, ownerID string) ([]models.Wishlist, error) {
	return s.WishlistRepo.ListByOwner(ctx, ownerID)
}

// GetProjection assembles the visibility-filtered view of one list. The
// read path is the privacy boundary: the owner gets comments but never the
// reserver's identity or per-contribution rows; a guest gets reservation
// presence and running totals, plus their own reserver identity if the item
// is theirs.
func (s *WishlistService) GetProjection(ctx context.Context, slug string, viewer models.Actor, viewerNickname string) (models.WishlistView, error) {
	w, err := s.WishlistRepo.GetBySlug(ctx, slug)
	if err != nil {
		return models.WishlistView{}, err
	}
	return s.projection(ctx, w, viewer, viewerNickname)
}

// GetOwnerView is the edit-page fetch by id. Only the owner may load a list
// this way.
func (s *WishlistService) GetOwnerView(ctx context.Context, listID string, viewer models.Actor) (models.WishlistView, error) {
	w, err := s.WishlistRepo.GetByID(ctx, listID)
	if err != nil {
		return models.WishlistView{}, err
	}
	if !viewer.Owns(w) {
		return models.WishlistView{}, models.ErrForbidden
	}
	return s.projection(ctx, w, viewer, "")
}

func (s *WishlistService) projection(ctx context.Context, w models.Wishlist, viewer models.Actor, viewerNickname string) (models.WishlistView, error) {
	items, err := s.ItemRepo.ListProjection(ctx, w.ID, viewer, viewerNickname)
	if err != nil {
		return models.WishlistView{}, err
	}
	ownerName, err := s.WishlistRepo.OwnerName(ctx, w.ID)
	if err != nil {
		return models.WishlistView{}, err
	}

	view := models.WishlistView{
		Wishlist:  w,
		OwnerName: ownerName,
		IsOwner:   viewer.Owns(w),
		Items:     items,
	}
	if view.IsOwner {
		comments, err := s.CommentRepo.ListByWishlist(ctx, w.ID)
		if err != nil {
			return models.WishlistView{}, err
		}
		for i := range view.Items {
			view.Items[i].Comments = comments[view.Items[i].ID]
		}
	}
	return view, nil
}
