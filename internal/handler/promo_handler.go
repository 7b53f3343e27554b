package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"kusina/internal/model"
	"kusina/internal/promo"

	"github.com/rs/zerolog"
)

// PromoHandler handles promo code validation.
type PromoHandler struct {
	validator promo.Validator
	logger    zerolog.Logger
}

// NewPromoHandler creates a new promo handler.
func NewPromoHandler(validator promo.Validator, logger zerolog.Logger) *PromoHandler {
	return &PromoHandler{
		validator: validator,
		logger:    logger.With().Str("handler", "promo").Logger(),
	}
}

// Validate handles POST /api/promos/validate requests. A code that does not
// apply is a 200 with valid:false, not an error status: the cart preview
// polls this endpoint as the customer types.
func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.PromoValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	discount, err := h.validator.Validate(r.Context(), req.Code, req.SubtotalPhp)
	if err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeJSON(w, http.StatusOK, model.PromoValidateResponse{
				Valid:       false,
				DiscountPhp: 0,
				Error:       domainErr.Message,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to validate promo code", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.PromoValidateResponse{
		Valid:       true,
		DiscountPhp: discount.AmountPhp,
		Code:        discount.Code,
	})
}
