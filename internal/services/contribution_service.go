package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"wishlyBack/internal/models"
	"wishlyBack/internal/notify"
)

type ContributionService struct {
	ContributionRepo ContributionStore
	ItemRepo         ItemStore
	WishlistRepo     WishlistStore
	Notifier         notify.Notifier
}

// Contribute pledges an amount toward a group-fundable item. The funding
// cap is checked and applied atomically by the store; two concurrent
// pledges can never jointly overshoot the target.
func (s *ContributionService) Contribute(ctx context.Context, itemID string, actor models.Actor, amountCents int64, nickname string) (models.Contribution, error) {
	if amountCents <= 0 {
		return models.Contribution{}, models.ErrInvalidAmount
	}
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return models.Contribution{}, models.ErrNicknameRequired
	}
	item, err := s.ItemRepo.GetItem(ctx, itemID)
	if err != nil {
		return models.Contribution{}, err
	}
	w, err := s.WishlistRepo.GetByID(ctx, item.WishlistID)
	if err != nil {
		return models.Contribution{}, err
	}

	c := models.Contribution{
		ID:          uuid.NewString(),
		ItemID:      itemID,
		AmountCents: amountCents,
		Nickname:    nickname,
	}
	if actor.Authenticated() {
		c.UserID = &actor.UserID
	}
	created, err := s.ContributionRepo.Contribute(ctx, c)
	if err != nil {
		return models.Contribution{}, err
	}
	s.Notifier.WishlistChanged(ctx, w.Slug)
	return created, nil
}
