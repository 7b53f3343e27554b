package handler

import (
	"encoding/json"
	"net/http"

	"kusina/internal/model"
	"kusina/internal/service"

	"github.com/rs/zerolog"
)

// QuoteHandler handles delivery quote requests.
type QuoteHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service service.OrderService, logger zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		service: service,
		logger:  logger.With().Str("handler", "quote").Logger(),
	}
}

// Quote handles POST /api/quote requests.
func (h *QuoteHandler) Quote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Quote(r.Context(), &req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute quote", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
