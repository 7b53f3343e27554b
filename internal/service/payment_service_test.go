package service

import (
	"context"
	"testing"

	"kusina/internal/model"
	"kusina/internal/payment"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestPaymentService(verifiers map[string]payment.Verifier) (*paymentService, *MockOrderRepository) {
	orderRepo := new(MockOrderRepository)
	return &paymentService{
		orderRepo: orderRepo,
		verifiers: verifiers,
		logger:    zerolog.Nop(),
	}, orderRepo
}

func TestPaymentService_Confirm_Success(t *testing.T) {
	order := &model.Order{
		ID:            uuid.New(),
		PaymentMethod: model.PaymentCard,
		PaymentStatus: model.PaymentUnpaid,
	}

	verifier := &MockVerifier{method: model.PaymentCard}
	verifier.On("Verify", mock.Anything, order, "pi_123").
		Return(&payment.Confirmation{Method: model.PaymentCard, Note: "stripe:pi_123"}, nil)

	svc, orderRepo := newTestPaymentService(map[string]payment.Verifier{"card": verifier})
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, []model.OrderItem{}, nil)
	orderRepo.On("MarkPaid", mock.Anything, order.ID, model.PaymentCard, "stripe:pi_123").Return(int64(1), nil)

	confirmed, err := svc.Confirm(context.Background(), order.ID, "card", "pi_123")

	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, confirmed.PaymentStatus)
	assert.Equal(t, "stripe:pi_123", confirmed.PaymentNote)
	orderRepo.AssertExpectations(t)
	verifier.AssertExpectations(t)
}

func TestPaymentService_Confirm_UnknownProvider(t *testing.T) {
	svc, orderRepo := newTestPaymentService(map[string]payment.Verifier{})

	confirmed, err := svc.Confirm(context.Background(), uuid.New(), "cheque", "ref")

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, model.ErrUnknownProvider)
	orderRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPaymentService_Confirm_OrderNotFound(t *testing.T) {
	verifier := &MockVerifier{method: model.PaymentCard}
	svc, orderRepo := newTestPaymentService(map[string]payment.Verifier{"card": verifier})

	id := uuid.New()
	orderRepo.On("GetByID", mock.Anything, id).Return(nil, nil, nil)

	confirmed, err := svc.Confirm(context.Background(), id, "card", "pi_123")

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
	verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_Confirm_RejectedVerificationSkipsWrite(t *testing.T) {
	order := &model.Order{
		ID:            uuid.New(),
		PaymentMethod: model.PaymentCard,
		PaymentStatus: model.PaymentUnpaid,
	}

	verifier := &MockVerifier{method: model.PaymentCard}
	verifier.On("Verify", mock.Anything, order, "pi_bad").Return(nil, model.ErrPaymentRejected)

	svc, orderRepo := newTestPaymentService(map[string]payment.Verifier{"card": verifier})
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, []model.OrderItem{}, nil)

	confirmed, err := svc.Confirm(context.Background(), order.ID, "card", "pi_bad")

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, model.ErrPaymentRejected)
	assert.Equal(t, model.PaymentUnpaid, order.PaymentStatus)
	orderRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_Confirm_MethodGuardRejectsWrite(t *testing.T) {
	// Stored rail is gcash; the card endpoint's guarded update matches no row.
	order := &model.Order{
		ID:            uuid.New(),
		PaymentMethod: model.PaymentGCash,
		PaymentStatus: model.PaymentUnpaid,
	}

	verifier := &MockVerifier{method: model.PaymentCard}
	verifier.On("Verify", mock.Anything, order, "pi_123").
		Return(&payment.Confirmation{Method: model.PaymentCard, Note: "stripe:pi_123"}, nil)

	svc, orderRepo := newTestPaymentService(map[string]payment.Verifier{"card": verifier})
	orderRepo.On("GetByID", mock.Anything, order.ID).Return(order, []model.OrderItem{}, nil)
	orderRepo.On("MarkPaid", mock.Anything, order.ID, model.PaymentCard, "stripe:pi_123").Return(int64(0), nil)

	confirmed, err := svc.Confirm(context.Background(), order.ID, "card", "pi_123")

	assert.Nil(t, confirmed)
	assert.ErrorIs(t, err, model.ErrOrderNotFound)
}
