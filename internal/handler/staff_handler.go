package handler

import (
	"encoding/json"
	"net/http"

	"kusina/internal/model"
	"kusina/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StaffHandler handles restaurant portal order management.
type StaffHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewStaffHandler creates a new staff handler.
func NewStaffHandler(service service.OrderService, logger zerolog.Logger) *StaffHandler {
	return &StaffHandler{
		service: service,
		logger:  logger.With().Str("handler", "staff").Logger(),
	}
}

// statusRequest is the direct status write payload.
type statusRequest struct {
	Status model.Status `json:"status"`
}

// UpdateStatus handles PUT /api/staff/orders/{id}/status requests.
func (h *StaffHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	idStr := pathSegment(r.URL.Path, "/api/staff/orders/")
	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), orderID, req.Status); err != nil {
		if model.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update order status", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
