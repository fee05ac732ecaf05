package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"wishlyBack/internal/models"
	"wishlyBack/internal/notify"
)

type ItemService struct {
	ItemRepo     ItemStore
	WishlistRepo WishlistStore
	Notifier     notify.Notifier
}

func validateItemFields(fields *models.ItemFields) error {
	fields.Title = strings.TrimSpace(fields.Title)
	if fields.Title == "" {
		return models.ErrEmptyTitle
	}
	if fields.PriceCents != nil && *fields.PriceCents < 0 {
		return models.ErrInvalidAmount
	}
	if fields.TargetCents != nil && *fields.TargetCents < 0 {
		return models.ErrInvalidAmount
	}
	return nil
}

func (s *ItemService) AddItem(ctx context.Context, listID string, actor models.Actor, fields models.ItemFields) (models.Item, error) {
	w, err := s.WishlistRepo.GetByID(ctx, listID)
	if err != nil {
		return models.Item{}, err
	}
	if !actor.Owns(w) {
		return models.Item{}, models.ErrForbidden
	}
	if err := validateItemFields(&fields); err != nil {
		return models.Item{}, err
	}

	item := models.Item{
		ID:            uuid.NewString(),
		WishlistID:    listID,
		Title:         fields.Title,
		URL:           fields.URL,
		ImageURL:      fields.ImageURL,
		PriceCents:    fields.PriceCents,
		TargetCents:   fields.TargetCents,
		IsUnavailable: fields.IsUnavailable,
	}
	created, err := s.ItemRepo.CreateItem(ctx, item)
	if err != nil {
		return models.Item{}, err
	}
	s.Notifier.WishlistChanged(ctx, w.Slug)
	return created, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, itemID string, actor models.Actor, fields models.ItemFields) error {
	item, w, err := s.itemWithList(ctx, itemID)
	if err != nil {
		return err
	}
	if !actor.Owns(w) {
		return models.ErrForbidden
	}
	if err := validateItemFields(&fields); err != nil {
		return err
	}
	if err := s.ItemRepo.UpdateItem(ctx, item.ID, fields); err != nil {
		return err
	}
	s.Notifier.WishlistChanged(ctx, w.Slug)
	return nil
}

// DeleteItem removes an item; the store refuses while any contribution is
// recorded (models.ErrHasContributions).
func (s *ItemService) DeleteItem(ctx context.Context, itemID string, actor models.Actor) error {
	_, w, err := s.itemWithList(ctx, itemID)
	if err != nil {
		return err
	}
	if !actor.Owns(w) {
		return models.ErrForbidden
	}
	if err := s.ItemRepo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	s.Notifier.WishlistChanged(ctx, w.Slug)
	return nil
}

func (s *ItemService) ReorderItems(ctx context.Context, listID string, actor models.Actor, orderedIDs []string) error {
	w, err := s.WishlistRepo.GetByID(ctx, listID)
	if err != nil {
		return err
	}
	if !actor.Owns(w) {
		return models.ErrForbidden
	}
	if err := s.ItemRepo.ReorderItems(ctx, listID, orderedIDs); err != nil {
		return err
	}
	s.Notifier.WishlistChanged(ctx, w.Slug)
	return nil
}

func (s *ItemService) itemWithList(ctx context.Context, itemID string) (models.Item, models.Wishlist, error) {
	item, err := s.ItemRepo.GetItem(ctx, itemID)
	if err != nil {
		return models.Item{}, models.Wishlist{}, err
	}
	w, err := s.WishlistRepo.GetByID(ctx, item.WishlistID)
	if err != nil {
		return models.Item{}, models.Wishlist{}, err
	}
	return item, w, nil
}
