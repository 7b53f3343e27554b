package repository

import (
	"context"
	"errors"
	"fmt"

	"kusina/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// restaurantRepository implements the RestaurantRepository interface using PostgreSQL.
type restaurantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRestaurantRepository creates a new PostgreSQL-backed restaurant repository.
func NewRestaurantRepository(pool *pgxpool.Pool, logger zerolog.Logger) RestaurantRepository {
	return &restaurantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "restaurant").Logger(),
	}
}

const restaurantColumns = `
	slug, name, commission_pct, delivery_commission_pct, lat, lng, portal_user, portal_password_hash`

// GetBySlug retrieves a restaurant's configuration.
func (r *restaurantRepository) GetBySlug(ctx context.Context, slug string) (*model.RestaurantConfig, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE slug = $1`
	return r.getOne(ctx, query, slug)
}

// GetByPortalUser retrieves a restaurant by its portal login name.
func (r *restaurantRepository) GetByPortalUser(ctx context.Context, user string) (*model.RestaurantConfig, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE portal_user = $1`
	return r.getOne(ctx, query, user)
}

func (r *restaurantRepository) getOne(ctx context.Context, query string, arg any) (*model.RestaurantConfig, error) {
	var rc model.RestaurantConfig
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&rc.Slug, &rc.Name, &rc.CommissionPct, &rc.DeliveryCommissionPct,
		&rc.Lat, &rc.Lng, &rc.PortalUser, &rc.PortalPasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to get restaurant")
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	return &rc, nil
}

// ListMenu retrieves the stored (cost-priced) menu of a restaurant.
func (r *restaurantRepository) ListMenu(ctx context.Context, slug string) ([]model.MenuItem, error) {
	query := `
		SELECT id, restaurant_slug, name, category, cost_php, available, created_at
		FROM menu_items
		WHERE restaurant_slug = $1
		ORDER BY category, name
	`

	rows, err := r.pool.Query(ctx, query, slug)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to list menu")
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var item model.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantSlug, &item.Name,
			&item.Category, &item.CostPhp, &item.Available, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read menu items: %w", err)
	}

	return items, nil
}
