package handler

import (
	"net/http"

	"kusina/internal/service"

	"github.com/rs/zerolog"
)

// MenuHandler serves customer-facing menus.
type MenuHandler struct {
	service service.MenuService
	logger  zerolog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(service service.MenuService, logger zerolog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger.With().Str("handler", "menu").Logger(),
	}
}

// Get handles GET /api/menu/{restaurant} requests.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	slug := pathSegment(r.URL.Path, "/api/menu/")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "restaurant is required", h.logger)
		return
	}

	resp, err := h.service.GetMenu(r.Context(), slug)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load menu", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
