package promo

import (
	"context"
	"strings"
	"time"

	"kusina/internal/model"
	"kusina/internal/repository"

	"github.com/rs/zerolog"
)

// validator implements Validator against the promo_codes table.
type validator struct {
	repo   repository.PromoRepository
	now    func() time.Time
	logger zerolog.Logger
}

// NewValidator creates a new promo validator.
func NewValidator(repo repository.PromoRepository, logger zerolog.Logger) Validator {
	return &validator{
		repo:   repo,
		now:    time.Now,
		logger: logger.With().Str("component", "promo-validator").Logger(),
	}
}

// Validate checks a promo code and computes the discount it grants.
func (v *validator) Validate(ctx context.Context, code string, subtotalPhp float64) (*Discount, error) {
	canonical := strings.ToUpper(strings.TrimSpace(code))
	if canonical == "" {
		return nil, model.ErrPromoInvalid
	}

	p, err := v.repo.GetByCode(ctx, canonical)
	if err != nil {
		return nil, err
	}
	if p == nil {
		v.logger.Debug().Str("code", canonical).Msg("promo code not found")
		return nil, model.ErrPromoInvalid
	}

	now := v.now()
	if now.Before(p.ValidFrom) || now.After(p.ValidUntil) {
		v.logger.Debug().Str("code", canonical).Msg("promo code outside validity window")
		return nil, model.ErrPromoExpired
	}

	// A non-positive cap means unlimited use.
	if p.UsageCap > 0 && p.UsageCount >= p.UsageCap {
		v.logger.Debug().
			Str("code", canonical).
			Int("usage_count", p.UsageCount).
			Int("usage_cap", p.UsageCap).
			Msg("promo code usage cap reached")
		return nil, model.ErrPromoUsedUp
	}

	if subtotalPhp < p.MinSubtotalPhp {
		v.logger.Debug().
			Str("code", canonical).
			Float64("subtotal_php", subtotalPhp).
			Float64("min_subtotal_php", p.MinSubtotalPhp).
			Msg("subtotal below promo minimum")
		return nil, model.ErrPromoMinNotMet
	}

	var amount float64
	switch p.Type {
	case model.DiscountPercent:
		amount = subtotalPhp * p.Value / 100
	case model.DiscountFlat:
		amount = p.Value
	default:
		return nil, model.ErrPromoInvalid
	}

	// A discount never exceeds the subtotal.
	if amount > subtotalPhp {
		amount = subtotalPhp
	}

	v.logger.Debug().
		Str("code", canonical).
		Float64("discount_php", amount).
		Msg("promo code validated")

	return &Discount{Code: canonical, AmountPhp: amount}, nil
}
