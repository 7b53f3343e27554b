package service

import (
	"context"

	"kusina/internal/auth"
	"kusina/internal/model"

	"github.com/google/uuid"
)

// OrderService defines operations for order management and the guest
// self-service flows.
type OrderService interface {
	// Checkout creates a new order: subtotal, promo discount, delivery fee,
	// priority fee and ETA are computed server-side.
	Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// Quote computes the delivery fee and ETA for a dropoff point.
	Quote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error)

	// Lookup returns recent orders matching a guest's phone by tail.
	Lookup(ctx context.Context, phoneNumber string) ([]model.Order, error)

	// Cancel applies a guest self-service cancellation.
	Cancel(ctx context.Context, req *model.CancelRequest) (*model.CancelResponse, error)

	// SubmitReview records a review for an order, guarded by phone-tail match.
	SubmitReview(ctx context.Context, orderID uuid.UUID, req *model.ReviewRequest) error

	// UpdateStatus writes a lifecycle status directly (staff/driver portals).
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error
}

// PaymentService confirms payments: verify against the provider first,
// then mark paid under the payment-method guard.
type PaymentService interface {
	// Confirm verifies the provider object named by reference for the given
	// provider key (card, session, gcash, crypto, paypal) and marks the
	// order paid on success.
	Confirm(ctx context.Context, orderID uuid.UUID, provider string, reference string) (*model.Order, error)
}

// MenuService serves customer-facing menus with commission markup applied.
type MenuService interface {
	// GetMenu lists a restaurant's menu at display prices.
	GetMenu(ctx context.Context, slug string) (*model.MenuResponse, error)
}

// AuthService verifies portal credentials and issues bearer tokens.
type AuthService interface {
	// Login verifies a password for the given portal and returns a signed token.
	Login(ctx context.Context, portal auth.PortalType, identifier, password string) (string, error)
}

// CustomerService covers customer identity extras.
type CustomerService interface {
	// ReferralCode returns the customer's referral code, creating the
	// customer row and generating the code lazily when needed.
	ReferralCode(ctx context.Context, phoneNumber string) (string, error)
}

// DriverService covers driver portal operations.
type DriverService interface {
	// UpdateLocation writes a driver's last-known position.
	UpdateLocation(ctx context.Context, driverID int64, lat, lng float64) error
}
