package repository

import (
	"context"

	"kusina/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items.
	// Returns (nil, nil, nil) when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// ListByPhoneTail retrieves recent orders whose stored phone ends with
	// the given digit tail. Callers re-verify each match with the full
	// phone-tail heuristic.
	ListByPhoneTail(ctx context.Context, tail string, limit int) ([]model.Order, error)

	// MarkCancelled sets the order status to cancelled.
	MarkCancelled(ctx context.Context, id uuid.UUID) error

	// UpdateStatus writes a new lifecycle status directly.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error

	// MarkPaid sets payment_status to paid, guarded by the expected payment
	// method so a confirmation cannot land under the wrong rail. Returns the
	// number of rows affected; zero means not found or method mismatch.
	MarkPaid(ctx context.Context, id uuid.UUID, method model.PaymentMethod, note string) (int64, error)

	// CreateReview inserts a customer review for an order.
	CreateReview(ctx context.Context, review *model.Review) error
}

// CustomerRepository defines the interface for customer data access operations.
type CustomerRepository interface {
	// GetByPhone retrieves a customer by exact phone. Returns nil when absent.
	GetByPhone(ctx context.Context, phone string) (*model.Customer, error)

	// GetByEmail retrieves a customer by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)

	// Create inserts a new customer.
	Create(ctx context.Context, customer *model.Customer) error

	// SetReferralCode persists a lazily generated referral code.
	SetReferralCode(ctx context.Context, id uuid.UUID, code string) error

	// AddLoyaltyPoints increments a customer's loyalty counter.
	AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error
}

// PromoRepository defines the interface for promo-code reads.
// Promo codes are read-only from the order flow apart from usage counting.
type PromoRepository interface {
	// GetByCode retrieves a promo code (uppercase match). Returns nil when absent.
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)

	// IncrementUsage bumps the usage counter after a successful checkout.
	IncrementUsage(ctx context.Context, code string) error
}

// RestaurantRepository defines the interface for restaurant configuration
// and menu access.
type RestaurantRepository interface {
	// GetBySlug retrieves a restaurant's configuration. Returns nil when
	// absent, in which case defaults apply.
	GetBySlug(ctx context.Context, slug string) (*model.RestaurantConfig, error)

	// GetByPortalUser retrieves a restaurant by its portal login name.
	GetByPortalUser(ctx context.Context, user string) (*model.RestaurantConfig, error)

	// ListMenu retrieves the stored (cost-priced) menu of a restaurant.
	ListMenu(ctx context.Context, slug string) ([]model.MenuItem, error)
}

// DriverRepository defines the interface for driver data access operations.
type DriverRepository interface {
	// GetByPhone retrieves a driver by phone. Returns nil when absent.
	GetByPhone(ctx context.Context, phone string) (*model.Driver, error)

	// UpdateLocation writes the driver's last-known position.
	UpdateLocation(ctx context.Context, id int64, lat, lng float64) error
}
