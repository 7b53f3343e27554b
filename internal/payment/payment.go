// Package payment implements server-side payment verification. No handler
// ever trusts a client-supplied "it's paid" claim: each provider's verifier
// re-checks the payment object against the provider's own API (or, for
// crypto, applies the reduced-trust rules) before the order is marked paid.
package payment

import (
	"context"

	"kusina/internal/model"
)

// ErrGateway wraps transport or protocol failures talking to a provider.
// Handlers surface it as a 502; the underlying error is logged server-side.
var ErrGateway = model.NewDomainError(model.ErrCodeGatewayFailure, "Payment gateway request failed")

// Confirmation is what a verifier learned from the provider about a
// settled payment.
type Confirmation struct {
	// Method is the rail the payment settled on.
	Method model.PaymentMethod

	// Note is an optional receipt detail (card brand/last-4, tx hash).
	Note string
}

// Verifier checks a provider-side payment object against an order.
// Implementations return model.ErrPaymentRejected (or a more specific
// domain error) when the provider does not confirm settlement, and an
// ErrGateway-wrapped error when the provider cannot be reached.
type Verifier interface {
	// Method is the payment rail this verifier confirms.
	Method() model.PaymentMethod

	// Verify checks the provider object identified by reference against
	// the order. It must not mutate anything.
	Verify(ctx context.Context, order *model.Order, reference string) (*Confirmation, error)
}
