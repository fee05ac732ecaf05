package handlers

import (
	"encoding/json"
	"net/http"

	"wishlyBack/internal/services"
)

type CommentHandler struct {
	Service *services.CommentService
}

type commentRequest struct {
	ParticipantName string `json:"participant_name"`
	Body            string `json:"body"`
}

func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	itemID := r.URL.Query().Get(":id")
	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	c, err := h.Service.AddComment(r.Context(), itemID, req.ParticipantName, req.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}
