package payment

import (
	"context"
	"regexp"
	"time"

	"kusina/internal/model"

	"github.com/rs/zerolog"
)

// confirmWindow is how long after order creation a crypto confirmation is
// accepted. There is no provider API to check on-chain settlement, so the
// window is the main brake on stale or replayed confirmations.
const confirmWindow = time.Hour

// txHashPattern is a permissive format check for an EVM transaction hash.
// It says nothing about chain validity; staff reconcile crypto payments
// manually against the wallet.
var txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{60,}$`)

// cryptoVerifier applies the reduced-trust crypto confirmation rules.
type cryptoVerifier struct {
	now    func() time.Time
	logger zerolog.Logger
}

// NewCryptoVerifier creates the crypto verifier.
func NewCryptoVerifier(logger zerolog.Logger) Verifier {
	return &cryptoVerifier{
		now:    time.Now,
		logger: logger.With().Str("verifier", "crypto").Logger(),
	}
}

// Method is the payment rail this verifier confirms.
func (v *cryptoVerifier) Method() model.PaymentMethod {
	return model.PaymentCrypto
}

// Verify requires the order's stored method to already be crypto and the
// confirmation to arrive within an hour of order creation. The reference,
// if present and well-formed, becomes a payment note; a malformed hash is
// ignored rather than rejected.
func (v *cryptoVerifier) Verify(ctx context.Context, order *model.Order, reference string) (*Confirmation, error) {
	if order.PaymentMethod != model.PaymentCrypto {
		v.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("method", string(order.PaymentMethod)).
			Msg("crypto confirmation for non-crypto order")
		return nil, model.ErrMethodMismatch
	}

	if v.now().Sub(order.CreatedAt) > confirmWindow {
		v.logger.Warn().
			Str("order_id", order.ID.String()).
			Time("created_at", order.CreatedAt).
			Msg("crypto confirmation window closed")
		return nil, model.ErrConfirmWindow
	}

	note := ""
	if reference != "" && txHashPattern.MatchString(reference) {
		note = "tx:" + reference
	}

	return &Confirmation{Method: model.PaymentCrypto, Note: note}, nil
}
