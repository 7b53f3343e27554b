package service

import (
	"context"
	"testing"

	"kusina/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestMenuService(defaultPct float64) (*menuService, *MockRestaurantRepository) {
	restaurantRepo := new(MockRestaurantRepository)
	return &menuService{
		restaurantRepo:       restaurantRepo,
		defaultCommissionPct: defaultPct,
		logger:               zerolog.Nop(),
	}, restaurantRepo
}

func TestMenuService_GetMenu_AppliesRestaurantCommission(t *testing.T) {
	svc, repo := newTestMenuService(30)

	rc := &model.RestaurantConfig{Slug: "lutong-bahay", Name: "Lutong Bahay", CommissionPct: 20}
	items := []model.MenuItem{
		{ID: 1, Name: "Kare-Kare", Category: "mains", CostPhp: 100, Available: true},
		{ID: 2, Name: "Halo-Halo", Category: "dessert", CostPhp: 85.5, Available: false},
	}

	repo.On("GetBySlug", mock.Anything, "lutong-bahay").Return(rc, nil)
	repo.On("ListMenu", mock.Anything, "lutong-bahay").Return(items, nil)

	resp, err := svc.GetMenu(context.Background(), "lutong-bahay")

	require.NoError(t, err)
	assert.Equal(t, "Lutong Bahay", resp.Restaurant)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 120.0, resp.Items[0].PricePhp)
	assert.Equal(t, 102.6, resp.Items[1].PricePhp)
	assert.True(t, resp.Items[0].Available)
	assert.False(t, resp.Items[1].Available)
}

func TestMenuService_GetMenu_DefaultCommissionWhenUnconfigured(t *testing.T) {
	svc, repo := newTestMenuService(30)

	items := []model.MenuItem{
		{ID: 3, Name: "Pancit Canton", Category: "noodles", CostPhp: 200, Available: true},
	}

	repo.On("GetBySlug", mock.Anything, "turo-turo").Return(nil, nil)
	repo.On("ListMenu", mock.Anything, "turo-turo").Return(items, nil)

	resp, err := svc.GetMenu(context.Background(), "turo-turo")

	require.NoError(t, err)
	assert.Equal(t, "turo-turo", resp.Restaurant)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 260.0, resp.Items[0].PricePhp)
}

func TestMenuService_GetMenu_EmptySlug(t *testing.T) {
	svc, repo := newTestMenuService(30)

	resp, err := svc.GetMenu(context.Background(), "")

	assert.Nil(t, resp)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "ListMenu", mock.Anything, mock.Anything)
}
