package repository

import (
	"context"
	"errors"
	"fmt"

	"kusina/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// customerRepository implements the CustomerRepository interface using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

const customerColumns = `
	id, name, phone, email, password_hash, loyalty_points, referral_code, gateway_ref, created_at`

// GetByPhone retrieves a customer by exact phone.
func (r *customerRepository) GetByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1`
	return r.getOne(ctx, query, phone)
}

// GetByEmail retrieves a customer by email.
func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	return r.getOne(ctx, query, email)
}

func (r *customerRepository) getOne(ctx context.Context, query string, arg any) (*model.Customer, error) {
	var c model.Customer
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.PasswordHash,
		&c.LoyaltyPoints, &c.ReferralCode, &c.GatewayRef, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to get customer")
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

// Create inserts a new customer.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		customer.ID, customer.Name, customer.Phone, customer.Email,
		customer.PasswordHash, customer.LoyaltyPoints, customer.ReferralCode,
		customer.GatewayRef, customer.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_id", customer.ID.String()).
			Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().
		Str("customer_id", customer.ID.String()).
		Msg("customer created")

	return nil
}

// SetReferralCode persists a lazily generated referral code.
func (r *customerRepository) SetReferralCode(ctx context.Context, id uuid.UUID, code string) error {
	query := `UPDATE customers SET referral_code = $2 WHERE id = $1 AND referral_code IS NULL`

	_, err := r.pool.Exec(ctx, query, id, code)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_id", id.String()).
			Msg("failed to set referral code")
		return fmt.Errorf("failed to set referral code: %w", err)
	}

	return nil
}

// AddLoyaltyPoints increments a customer's loyalty counter.
func (r *customerRepository) AddLoyaltyPoints(ctx context.Context, id uuid.UUID, points int) error {
	query := `UPDATE customers SET loyalty_points = loyalty_points + $2 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, points)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("customer_id", id.String()).
			Int("points", points).
			Msg("failed to add loyalty points")
		return fmt.Errorf("failed to add loyalty points: %w", err)
	}

	return nil
}
