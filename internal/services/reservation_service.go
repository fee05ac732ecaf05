package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"wishlyBack/internal/models"
	"wishlyBack/internal/notify"
)

type ReservationService struct {
	ReservationRepo ReservationStore
	ItemRepo        ItemStore
	WishlistRepo    WishlistStore
	Notifier        notify.Notifier
}

// Reserve places the single live claim on an item. The list owner cannot
// reserve their own items, and group-fundable items take contributions
// instead. The one-live-reservation rule itself is enforced by the store,
// not here.
func (s *ReservationService) Reserve(ctx context.Context, itemID string, actor models.Actor, nickname string) (models.Reservation, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return models.Reservation{}, models.ErrNicknameRequired
	}
	item, err := s.ItemRepo.GetItem(ctx, itemID)
	if err != nil {
		return models.Reservation{}, err
	}
	w, err := s.WishlistRepo.GetByID(ctx, item.WishlistID)
	if err != nil {
		return models.Reservation{}, err
	}
	if actor.Owns(w) {
		return models.Reservation{}, models.ErrForbidden
	}
	if item.GroupFundable() {
		return models.Reservation{}, models.ErrGroupFundable
	}
	if item.IsUnavailable {
		return models.Reservation{}, models.ErrForbidden
	}

	res := models.Reservation{
		ID:       uuid.NewString(),
		ItemID:   itemID,
		Nickname: nickname,
	}
	if actor.Authenticated() {
		res.UserID = &actor.UserID
	}
	created, err := s.ReservationRepo.Reserve(ctx, res)
	if err != nil {
		return models.Reservation{}, err
	}
	s.Notifier.WishlistChanged(ctx, w.Slug)
	return created, nil
}

// Unreserve releases a claim. Only the actor who created it may do so: an
// authenticated reserver is matched by user id, an anonymous one by the
// stored nickname. A nickname submitted by a guest never overrides an
// authenticated reserver.
func (s *ReservationService) Unreserve(ctx context.Context, itemID string, actor models.Actor, nickname string) error {
	res, err := s.ReservationRepo.GetByItem(ctx, itemID)
	if err != nil {
		return err
	}
	if res.UserID != nil {
		if !actor.Authenticated() || actor.UserID != *res.UserID {
			return models.ErrForbidden
		}
	} else if strings.TrimSpace(nickname) == "" || strings.TrimSpace(nickname) != res.Nickname {
		return models.ErrForbidden
	}
	if err := s.ReservationRepo.Delete(ctx, res.ID); err != nil {
		return err
	}

	item, err := s.ItemRepo.GetItem(ctx, itemID)
	if err == nil {
		if w, err := s.WishlistRepo.GetByID(ctx, item.WishlistID); err == nil {
			s.Notifier.WishlistChanged(ctx, w.Slug)
		}
	}
	return nil
}
