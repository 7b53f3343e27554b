package service

import (
	"context"
	"fmt"

	"kusina/internal/model"
	"kusina/internal/payment"
	"kusina/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// paymentService implements PaymentService: verify against the provider,
// then apply a single guarded paid-write. The two side effects are not
// transactional; a capture that succeeds followed by a failed database
// write is surfaced as an error and reconciled manually.
type paymentService struct {
	orderRepo repository.OrderRepository
	verifiers map[string]payment.Verifier
	logger    zerolog.Logger
}

// NewPaymentService creates a payment service from the given verifiers,
// keyed by the endpoint provider name (card, session, gcash, crypto, paypal).
func NewPaymentService(
	orderRepo repository.OrderRepository,
	verifiers map[string]payment.Verifier,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		orderRepo: orderRepo,
		verifiers: verifiers,
		logger:    logger.With().Str("service", "payment").Logger(),
	}
}

// Confirm verifies and applies a payment confirmation.
func (s *paymentService) Confirm(ctx context.Context, orderID uuid.UUID, provider string, reference string) (*model.Order, error) {
	verifier, ok := s.verifiers[provider]
	if !ok {
		s.logger.Warn().Str("provider", provider).Msg("confirmation against unknown provider")
		return nil, model.ErrUnknownProvider
	}

	order, _, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to load order for confirmation")
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	conf, err := verifier.Verify(ctx, order, reference)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", orderID.String()).
			Str("provider", provider).
			Msg("payment verification failed")
		return nil, err
	}

	rows, err := s.orderRepo.MarkPaid(ctx, orderID, conf.Method, conf.Note)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm payment: %w", err)
	}
	if rows == 0 {
		// The payment-method guard rejected the write: the order's stored
		// rail does not match this endpoint.
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("provider", provider).
			Str("stored_method", string(order.PaymentMethod)).
			Msg("paid-write rejected by payment-method guard")
		return nil, model.ErrOrderNotFound
	}

	order.PaymentStatus = model.PaymentPaid
	if conf.Note != "" {
		order.PaymentNote = conf.Note
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("provider", provider).
		Msg("payment confirmed")

	return order, nil
}
