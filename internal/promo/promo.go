package promo

import "context"

// Discount is the result of a successful promo validation.
type Discount struct {
	// Code is the canonical (uppercase) promo code.
	Code string

	// AmountPhp is the peso discount, never exceeding the subtotal.
	AmountPhp float64
}

// Validator defines the interface for promo-code validation.
type Validator interface {
	// Validate checks a promo code against the current time, usage count
	// and subtotal, and computes the discount it grants. Returns one of the
	// model.ErrPromo* domain errors when the code does not apply.
	Validate(ctx context.Context, code string, subtotalPhp float64) (*Discount, error)
}
