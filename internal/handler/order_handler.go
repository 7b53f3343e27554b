package handler

import (
	"encoding/json"
	"net/http"

	"kusina/internal/model"
	"kusina/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Checkout handles POST /api/orders requests.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Checkout(r.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		message := "failed to create order"

		switch err {
		case model.ErrPromoInvalid, model.ErrPromoExpired, model.ErrPromoUsedUp, model.ErrPromoMinNotMet:
			status = http.StatusBadRequest
			message = err.Error()
		default:
			if model.IsValidation(err) {
				status = http.StatusBadRequest
				message = err.Error()
			}
		}

		writeError(w, status, message, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	idStr := pathSegment(r.URL.Path, "/api/orders/")
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return
	}

	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	resp, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		if err == model.ErrOrderNotFound {
			writeError(w, http.StatusNotFound, err.Error(), h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to retrieve order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Lookup handles POST /api/orders/lookup requests: guest order history by phone.
func (h *OrderHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	orders, err := h.service.Lookup(r.Context(), req.Phone)
	if err != nil {
		if model.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to look up orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// Cancel handles POST /api/orders/cancel requests.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	var req model.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	resp, err := h.service.Cancel(r.Context(), &req)
	if err != nil {
		switch err {
		case model.ErrOrderNotFound:
			writeError(w, http.StatusNotFound, err.Error(), h.logger)
		case model.ErrCancelWindowClosed, model.ErrNotCancellable:
			writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		default:
			writeError(w, http.StatusInternalServerError, "failed to cancel order", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Review handles POST /api/orders/{id}/review requests.
func (h *OrderHandler) Review(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", h.logger)
		return
	}

	idStr := pathSegment(r.URL.Path, "/api/orders/")
	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return
	}

	var req model.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.service.SubmitReview(r.Context(), orderID, &req); err != nil {
		switch err {
		case model.ErrOrderNotFound:
			writeError(w, http.StatusNotFound, err.Error(), h.logger)
		default:
			if model.IsValidation(err) {
				writeError(w, http.StatusBadRequest, err.Error(), h.logger)
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to submit review", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}
