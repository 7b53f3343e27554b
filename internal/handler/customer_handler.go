package handler

import (
	"encoding/json"
	"net/http"

	"kusina/internal/model"
	"kusina/internal/service"

	"github.com/rs/zerolog"
)

// CustomerHandler handles customer identity extras.
type CustomerHandler struct {
	service service.CustomerService
	logger  zerolog.Logger
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(service service.CustomerService, logger zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger.With().Str("handler", "customer").Logger(),
	}
}

// Referral handles POST /api/referral requests.
func (h *CustomerHandler) Referral(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.ReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	code, err := h.service.ReferralCode(r.Context(), req.Phone)
	if err != nil {
		if model.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get referral code", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.ReferralResponse{Code: code})
}
