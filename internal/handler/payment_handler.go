package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"kusina/internal/model"
	"kusina/internal/payment"
	"kusina/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentHandler handles payment confirmation requests.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// confirmRequest accepts each provider's reference field; exactly one is
// relevant per endpoint.
type confirmRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	SessionID       string `json:"sessionId"`
	PaymentID       string `json:"paymentId"`
	TxHash          string `json:"txHash"`
	PayPalOrderID   string `json:"paypalOrderId"`
}

// reference returns the provider-appropriate reference from the payload.
func (r *confirmRequest) reference(provider string) string {
	switch provider {
	case "card":
		return r.PaymentIntentID
	case "session":
		return r.SessionID
	case "gcash":
		return r.PaymentID
	case "crypto":
		return r.TxHash
	case "paypal":
		return r.PayPalOrderID
	}
	return ""
}

// Confirm handles POST /api/payments/{id}/{provider} requests.
func (h *PaymentHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/payments/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		writeError(w, http.StatusNotFound, "not found", h.logger)
		return
	}

	orderID, err := uuid.Parse(parts[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}
	provider := parts[1]

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.Confirm(r.Context(), orderID, provider, req.reference(provider))
	if err != nil {
		switch {
		case err == model.ErrOrderNotFound || err == model.ErrMethodMismatch:
			// Both read as "no such payable order" so the endpoint does not
			// leak which rail an order was placed on.
			writeError(w, http.StatusNotFound, model.ErrOrderNotFound.Message, h.logger)
		case err == model.ErrPaymentRejected || err == model.ErrConfirmWindow:
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		case errors.Is(err, payment.ErrGateway):
			writeError(w, http.StatusBadGateway, "payment provider unavailable", h.logger)
		case err == model.ErrUnknownProvider:
			writeError(w, http.StatusNotFound, "not found", h.logger)
		default:
			writeError(w, http.StatusInternalServerError, "failed to confirm payment", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}
