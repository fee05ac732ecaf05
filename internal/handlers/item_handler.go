package handlers

import (
	"encoding/json"
	"net/http"

	"wishlyBack/internal/models"
	"wishlyBack/internal/money"
	"wishlyBack/internal/services"
)

type ItemHandler struct {
	Items         *services.ItemService
	Reservations  *services.ReservationService
	Contributions *services.ContributionService
}

type itemRequest struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	ImageURL      string `json:"image_url"`
	PriceCents    *int64 `json:"price_cents"`
	TargetCents   *int64 `json:"target_cents"`
	IsUnavailable bool   `json:"is_unavailable"`
}

func (req itemRequest) fields() models.ItemFields {
	return models.ItemFields{
		Title:         req.Title,
		URL:           req.URL,
		ImageURL:      req.ImageURL,
		PriceCents:    req.PriceCents,
		TargetCents:   req.TargetCents,
		IsUnavailable: req.IsUnavailable,
	}
}

func (h *ItemHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	listID := r.URL.Query().Get(":id")
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	item, err := h.Items.AddItem(r.Context(), listID, actorFrom(r), req.fields())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get(":id")
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.Items.UpdateItem(r.Context(), itemID, actorFrom(r), req.fields()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get(":id")
	if err := h.Items.DeleteItem(r.Context(), itemID, actorFrom(r)); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	ItemIDs []string `json:"item_ids"`
}

func (h *ItemHandler) ReorderItems(w http.ResponseWriter, r *http.Request) {
	listID := r.URL.Query().Get(":id")
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.Items.ReorderItems(r.Context(), listID, actorFrom(r), req.ItemIDs); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type participantRequest struct {
	ParticipantName string `json:"participant_name"`
}

func (h *ItemHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get(":id")
	var req participantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	res, err := h.Reservations.Reserve(r.Context(), itemID, actorFrom(r), req.ParticipantName)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (h *ItemHandler) Unreserve(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get(":id")
	var req participantRequest
	// Body is optional for authenticated reservers.
	json.NewDecoder(r.Body).Decode(&req)
	if err := h.Reservations.Unreserve(r.Context(), itemID, actorFrom(r), req.ParticipantName); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type contributeRequest struct {
	ParticipantName string `json:"participant_name"`
	AmountCents     int64  `json:"amount_cents"`
	Amount          string `json:"amount"`
}

func (h *ItemHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get(":id")
	var req contributeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	amount := req.AmountCents
	if req.Amount != "" {
		parsed, err := money.ToMinorUnits(req.Amount)
		if err != nil {
			respondError(w, err)
			return
		}
		amount = parsed
	}
	c, err := h.Contributions.Contribute(r.Context(), itemID, actorFrom(r), amount, req.ParticipantName)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
