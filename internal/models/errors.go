package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrNotFound           = errors.New("models: entity not found")
	ErrForbidden          = errors.New("models: actor lacks required capability")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")

	ErrAlreadyReserved  = errors.New("item already reserved")
	ErrNotReserved      = errors.New("item is not reserved")
	ErrHasContributions = errors.New("item has contributions and cannot be deleted")
	ErrExceedsTarget    = errors.New("contribution exceeds funding target")
	ErrNoFundingTarget  = errors.New("item has no funding target")
	ErrInvalidAmount    = errors.New("invalid monetary amount")
	ErrInvalidOrder     = errors.New("item order does not match wishlist items")
	ErrEmptyBody        = errors.New("comment body is empty")
	ErrSlugExhausted    = errors.New("could not generate unique slug")
	ErrGroupFundable    = errors.New("group-fundable items take contributions, not reservations")
	ErrEmptyTitle       = errors.New("title is required")
	ErrNicknameRequired = errors.New("participant name is required")
	ErrInvalidURL       = errors.New("invalid url")
)
