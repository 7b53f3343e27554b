package service

import (
	"context"
	"fmt"
	"math"

	"kusina/internal/model"
	"kusina/internal/pricing"
	"kusina/internal/repository"

	"github.com/rs/zerolog"
)

// menuService implements MenuService.
type menuService struct {
	restaurantRepo       repository.RestaurantRepository
	defaultCommissionPct float64
	logger               zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(restaurantRepo repository.RestaurantRepository, defaultCommissionPct float64, logger zerolog.Logger) MenuService {
	return &menuService{
		restaurantRepo:       restaurantRepo,
		defaultCommissionPct: defaultCommissionPct,
		logger:               logger.With().Str("service", "menu").Logger(),
	}
}

// GetMenu lists a restaurant's menu at display prices. The stored cost is
// marked up by the restaurant's commission percentage, or the default when
// no configuration row exists.
func (s *menuService) GetMenu(ctx context.Context, slug string) (*model.MenuResponse, error) {
	if slug == "" {
		return nil, model.Validationf("restaurant slug is required")
	}

	pct := s.defaultCommissionPct
	name := slug

	rc, err := s.restaurantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	if rc != nil {
		pct = rc.CommissionPct
		name = rc.Name
	}

	items, err := s.restaurantRepo.ListMenu(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}

	views := make([]model.MenuItemView, len(items))
	for i, item := range items {
		display := pricing.DisplayFromCost(item.CostPhp, pct)
		views[i] = model.MenuItemView{
			ID:        item.ID,
			Name:      item.Name,
			Category:  item.Category,
			PricePhp:  math.Round(display*100) / 100,
			Available: item.Available,
		}
	}

	return &model.MenuResponse{Restaurant: name, Items: views}, nil
}
