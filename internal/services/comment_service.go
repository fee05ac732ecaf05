package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"wishlyBack/internal/models"
	"wishlyBack/internal/notify"
)

type CommentService struct {
	CommentRepo  CommentStore
	ItemRepo     ItemStore
	WishlistRepo WishlistStore
	Notifier     notify.Notifier
}

// AddComment attaches a guest note to an item. It is only ever shown to the
// list owner, without the guest's name.
func (s *CommentService) AddComment(ctx context.Context, itemID, nickname, body string) (models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.Comment{}, models.ErrEmptyBody
	}
	item, err := s.ItemRepo.GetItem(ctx, itemID)
	if err != nil {
		return models.Comment{}, err
	}
	w, err := s.WishlistRepo.GetByID(ctx, item.WishlistID)
	if err != nil {
		return models.Comment{}, err
	}

	c := models.Comment{
		ID:       uuid.NewString(),
		ItemID:   itemID,
		Nickname: strings.TrimSpace(nickname),
		Body:     body,
	}
	created, err := s.CommentRepo.AddComment(ctx, c)
	if err != nil {
		return models.Comment{}, err
	}
	s.Notifier.WishlistChanged(ctx, w.Slug)
	return created, nil
}
