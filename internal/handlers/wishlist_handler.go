package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"wishlyBack/internal/models"
	"wishlyBack/internal/services"
)

type WishlistHandler struct {
	Service *services.WishlistService
}

type wishlistRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DeadlineAt  *time.Time `json:"deadline_at"`
}

func (h *WishlistHandler) CreateWishlist(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	if !actor.Authenticated() {
		errorJSON(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req wishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	list, err := h.Service.CreateWishlist(r.Context(), actor.UserID, req.Title, req.Description, req.DeadlineAt)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (h *WishlistHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := actorFrom(r)
	if !actor.Authenticated() {
		errorJSON(w, http.StatusUnauthorized, "authentication required")
		return
	}
	lists, err := h.Service.ListByOwner(r.Context(), actor.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if lists == nil {
		lists = []models.Wishlist{}
	}
	writeJSON(w, http.StatusOK, lists)
}

// GetBySlug serves the shared list page. Guests identify themselves with the
// participant_name query parameter so their own reservation is marked.
func (h *WishlistHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get(":slug")
	nickname := r.URL.Query().Get("participant_name")

	view, err := h.Service.GetProjection(r.Context(), slug, actorFrom(r), nickname)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *WishlistHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	view, err := h.Service.GetOwnerView(r.Context(), id, actorFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type wishlistPatchRequest struct {
	Title         *string    `json:"title"`
	Description   *string    `json:"description"`
	DeadlineAt    *time.Time `json:"deadline_at"`
	ClearDeadline bool       `json:"clear_deadline"`
}

func (h *WishlistHandler) UpdateWishlist(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get(":id")
	var req wishlistPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	patch := models.WishlistPatch{
		Title:         req.Title,
		Description:   req.Description,
		DeadlineAt:    req.DeadlineAt,
		ClearDeadline: req.ClearDeadline,
	}
	if err := h.Service.UpdateWishlist(r.Context(), id, actorFrom(r), patch); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
