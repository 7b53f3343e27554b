package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kusina/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMenuHandler_Get(t *testing.T) {
	logger := zerolog.Nop()
	mockService := new(MockMenuService)
	handler := NewMenuHandler(mockService, logger)

	menu := &model.MenuResponse{
		Restaurant: "Lutong Bahay",
		Items: []model.MenuItemView{
			{Name: "Kare-Kare", Category: "mains", PricePhp: 120, Available: true},
		},
	}
	mockService.On("GetMenu", mock.Anything, "lutong-bahay").Return(menu, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/menu/lutong-bahay", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.MenuResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Lutong Bahay", resp.Restaurant)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 120.0, resp.Items[0].PricePhp)
}

func TestMenuHandler_Get_MissingSlug(t *testing.T) {
	mockService := new(MockMenuService)
	handler := NewMenuHandler(mockService, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/menu/", nil)
	w := httptest.NewRecorder()

	handler.Get(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "GetMenu", mock.Anything, mock.Anything)
}
