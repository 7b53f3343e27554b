package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kusina/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// promoRepository implements the PromoRepository interface using PostgreSQL.
type promoRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPromoRepository creates a new PostgreSQL-backed promo repository.
func NewPromoRepository(pool *pgxpool.Pool, logger zerolog.Logger) PromoRepository {
	return &promoRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "promo").Logger(),
	}
}

// GetByCode retrieves a promo code. Codes are stored uppercase; the lookup
// is case-insensitive.
func (r *promoRepository) GetByCode(ctx context.Context, code string) (*model.PromoCode, error) {
	query := `
		SELECT code, discount_type, discount_value, min_subtotal_php,
			usage_cap, usage_count, valid_from, valid_until
		FROM promo_codes
		WHERE code = $1
	`

	var p model.PromoCode
	err := r.pool.QueryRow(ctx, query, strings.ToUpper(code)).Scan(
		&p.Code, &p.Type, &p.Value, &p.MinSubtotalPhp,
		&p.UsageCap, &p.UsageCount, &p.ValidFrom, &p.ValidUntil,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("code", code).Msg("promo code not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to get promo code")
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}

	return &p, nil
}

// IncrementUsage bumps the usage counter after a successful checkout.
func (r *promoRepository) IncrementUsage(ctx context.Context, code string) error {
	query := `UPDATE promo_codes SET usage_count = usage_count + 1 WHERE code = $1`

	_, err := r.pool.Exec(ctx, query, strings.ToUpper(code))
	if err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to increment promo usage")
		return fmt.Errorf("failed to increment promo usage: %w", err)
	}

	return nil
}
