package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"kusina/internal/middleware"
	"kusina/internal/model"
	"kusina/internal/service"

	"github.com/rs/zerolog"
)

// DriverHandler handles driver portal requests.
type DriverHandler struct {
	service service.DriverService
	logger  zerolog.Logger
}

// NewDriverHandler creates a new driver handler.
func NewDriverHandler(service service.DriverService, logger zerolog.Logger) *DriverHandler {
	return &DriverHandler{
		service: service,
		logger:  logger.With().Str("handler", "driver").Logger(),
	}
}

// UpdateLocation handles PUT /api/driver/location requests. The driver
// identity comes from the bearer token, never the payload.
func (h *DriverHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	claims := middleware.ClaimsFrom(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorised", h.logger)
		return
	}

	driverID, err := strconv.ParseInt(claims.ID, 10, 64)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorised", h.logger)
		return
	}

	var req model.DriverLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.UpdateLocation(r.Context(), driverID, req.Lat, req.Lng); err != nil {
		if model.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update location", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
