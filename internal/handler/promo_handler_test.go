package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kusina/internal/model"
	"kusina/internal/promo"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPromoHandler_Validate(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name         string
		mockReturn   *promo.Discount
		mockError    error
		wantValid    bool
		wantDiscount float64
		wantCode     string
	}{
		{
			name:         "Valid percent code",
			mockReturn:   &promo.Discount{Code: "SAVE10", AmountPhp: 50},
			wantValid:    true,
			wantDiscount: 50,
			wantCode:     "SAVE10",
		},
		{
			name:      "Expired code is 200 with valid false",
			mockError: model.ErrPromoExpired,
			wantValid: false,
		},
		{
			name:      "Below minimum subtotal",
			mockError: model.ErrPromoMinNotMet,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := new(MockPromoValidator)
			handler := NewPromoHandler(validator, logger)

			validator.On("Validate", mock.Anything, "SAVE10", 500.0).Return(tt.mockReturn, tt.mockError)

			body := encodeBody(t, &model.PromoValidateRequest{Code: "SAVE10", SubtotalPhp: 500})
			req := httptest.NewRequest(http.MethodPost, "/api/promos/validate", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			handler.Validate(w, req)

			require.Equal(t, http.StatusOK, w.Code)

			var resp model.PromoValidateResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantValid, resp.Valid)
			assert.Equal(t, tt.wantDiscount, resp.DiscountPhp)
			assert.Equal(t, tt.wantCode, resp.Code)
			if !tt.wantValid {
				assert.NotEmpty(t, resp.Error)
			}
		})
	}
}

func TestPromoHandler_Validate_BadRequest(t *testing.T) {
	validator := new(MockPromoValidator)
	handler := NewPromoHandler(validator, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/promos/validate", bytes.NewBufferString("not json"))
	w := httptest.NewRecorder()

	handler.Validate(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	validator.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything, mock.Anything)
}
