package handlers

import (
	"net/http"

	"wishlyBack/internal/services"
)

type TemplateHandler struct {
	Service *services.TemplateService
}

func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.ListTemplates())
}
