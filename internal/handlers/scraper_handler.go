package handlers

import (
	"encoding/json"
	"net/http"

	"wishlyBack/internal/services"
)

type ScraperHandler struct {
	Service *services.ScraperService
}

type scrapeRequest struct {
	URL string `json:"url"`
}

func (h *ScraperHandler) FetchMeta(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid body")
		return
	}
	meta, err := h.Service.FetchMeta(r.Context(), req.URL)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meta)
}
