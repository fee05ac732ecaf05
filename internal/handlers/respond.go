package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"wishlyBack/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respondError translates service sentinels into HTTP status codes. Unknown
// errors surface as 500 with a generic message.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrNoRecord):
		errorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrForbidden):
		errorJSON(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, models.ErrInvalidCredentials):
		errorJSON(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, models.ErrAlreadyReserved):
		errorJSON(w, http.StatusConflict, "item is already reserved")
	case errors.Is(err, models.ErrNotReserved):
		errorJSON(w, http.StatusConflict, "item is not reserved")
	case errors.Is(err, models.ErrHasContributions):
		errorJSON(w, http.StatusConflict, "item has contributions")
	case errors.Is(err, models.ErrExceedsTarget):
		errorJSON(w, http.StatusConflict, "contribution exceeds the funding target")
	case errors.Is(err, models.ErrGroupFundable):
		errorJSON(w, http.StatusConflict, "group-fundable items cannot be reserved")
	case errors.Is(err, models.ErrSlugExhausted):
		errorJSON(w, http.StatusConflict, "could not allocate a unique link")
	case errors.Is(err, models.ErrDuplicateEmail):
		errorJSON(w, http.StatusConflict, "email is already registered")
	case errors.Is(err, models.ErrNoFundingTarget),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidOrder),
		errors.Is(err, models.ErrEmptyBody),
		errors.Is(err, models.ErrEmptyTitle),
		errors.Is(err, models.ErrNicknameRequired),
		errors.Is(err, models.ErrInvalidURL):
		errorJSON(w, http.StatusBadRequest, err.Error())
	default:
		errorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}

// actorFrom reads the authenticated user id placed in the request context by
// the auth middleware. Absent id means an anonymous guest.
func actorFrom(r *http.Request) models.Actor {
	if id, ok := r.Context().Value("user_id").(string); ok && id != "" {
		return models.Actor{UserID: id}
	}
	return models.Guest
}
