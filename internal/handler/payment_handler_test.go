package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"kusina/internal/model"
	"kusina/internal/payment"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPaymentHandler_Confirm(t *testing.T) {
	logger := zerolog.Nop()

	orderID := uuid.New()
	paidOrder := &model.Order{
		ID:            orderID,
		PaymentMethod: model.PaymentCard,
		PaymentStatus: model.PaymentPaid,
		PaymentNote:   "stripe:pi_123",
	}

	tests := []struct {
		name           string
		path           string
		body           string
		provider       string
		reference      string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Card success",
			path:           "/api/payments/" + orderID.String() + "/card",
			body:           `{"paymentIntentId":"pi_123"}`,
			provider:       "card",
			reference:      "pi_123",
			mockReturn:     paidOrder,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "GCash success",
			path:           "/api/payments/" + orderID.String() + "/gcash",
			body:           `{"paymentId":"pay_abc"}`,
			provider:       "gcash",
			reference:      "pay_abc",
			mockReturn:     paidOrder,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Crypto accepts empty hash",
			path:           "/api/payments/" + orderID.String() + "/crypto",
			body:           `{}`,
			provider:       "crypto",
			reference:      "",
			mockReturn:     paidOrder,
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Rejected payment",
			path:           "/api/payments/" + orderID.String() + "/card",
			body:           `{"paymentIntentId":"pi_bad"}`,
			provider:       "card",
			reference:      "pi_bad",
			mockError:      model.ErrPaymentRejected,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Confirmation window closed",
			path:           "/api/payments/" + orderID.String() + "/crypto",
			body:           `{"txHash":"0xabc"}`,
			provider:       "crypto",
			reference:      "0xabc",
			mockError:      model.ErrConfirmWindow,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Method mismatch reads as not found",
			path:           "/api/payments/" + orderID.String() + "/card",
			body:           `{"paymentIntentId":"pi_123"}`,
			provider:       "card",
			reference:      "pi_123",
			mockError:      model.ErrMethodMismatch,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Order not found",
			path:           "/api/payments/" + orderID.String() + "/paypal",
			body:           `{"paypalOrderId":"5O1234"}`,
			provider:       "paypal",
			reference:      "5O1234",
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Gateway unavailable",
			path:           "/api/payments/" + orderID.String() + "/session",
			body:           `{"sessionId":"cs_123"}`,
			provider:       "session",
			reference:      "cs_123",
			mockError:      fmt.Errorf("%w: status 500", payment.ErrGateway),
			expectedStatus: http.StatusBadGateway,
			expectService:  true,
		},
		{
			name:           "Unknown provider",
			path:           "/api/payments/" + orderID.String() + "/cheque",
			body:           `{}`,
			provider:       "cheque",
			reference:      "",
			mockError:      model.ErrUnknownProvider,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid order ID",
			path:           "/api/payments/not-a-uuid/card",
			body:           `{"paymentIntentId":"pi_123"}`,
			expectedStatus: http.StatusBadRequest,
			expectService:  false,
		},
		{
			name:           "Missing provider segment",
			path:           "/api/payments/" + orderID.String(),
			body:           `{}`,
			expectedStatus: http.StatusNotFound,
			expectService:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockPaymentService)
			handler := NewPaymentHandler(mockService, logger)

			if tt.expectService {
				mockService.On("Confirm", mock.Anything, orderID, tt.provider, tt.reference).
					Return(tt.mockReturn, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Confirm(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectService {
				mockService.AssertExpectations(t)
			}
		})
	}
}
