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

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `
	id, customer_name, phone, address, lat, lng, landmark, notes,
	subtotal_php, discount_php, delivery_fee_php, tip_php, priority_fee_php, total_php,
	promo_code, status, payment_method, payment_status, payment_note,
	scheduled_for, cancel_cutoff, created_at, updated_at`

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.CustomerName, order.Phone, order.Address,
		order.Lat, order.Lng, order.Landmark, order.Notes,
		order.SubtotalPhp, order.DiscountPhp, order.DeliveryFeePhp,
		order.TipPhp, order.PriorityFeePhp, order.TotalPhp,
		order.PromoCode, order.Status, order.PaymentMethod, order.PaymentStatus,
		order.PaymentNote, order.Scheduled, order.CancelCutoff,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created")

	return nil
}

// CreateOrderItems inserts multiple order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, restaurant_slug, restaurant_name, item_name, unit_price_php, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.RestaurantSlug,
			item.RestaurantName, item.ItemName, item.UnitPricePhp, item.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("item", items[i].ItemName).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(items)).
		Msg("order items created")

	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	orderQuery := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := r.scanOrder(r.pool.QueryRow(ctx, orderQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, nil, fmt.Errorf("failed to get order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, restaurant_slug, restaurant_name, item_name, unit_price_php, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY item_name
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order items")
		return nil, nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.RestaurantSlug,
			&item.RestaurantName, &item.ItemName, &item.UnitPricePhp, &item.Quantity); err != nil {
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return order, items, nil
}

// ListByPhoneTail retrieves recent orders whose stored phone ends with the
// given digit tail after digit normalization.
func (r *orderRepository) ListByPhoneTail(ctx context.Context, tail string, limit int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE right(regexp_replace(phone, '[^0-9]', '', 'g'), length($1)) = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, tail, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list orders by phone tail")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	return orders, nil
}

// MarkCancelled sets the order status to cancelled.
func (r *orderRepository) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	return r.UpdateStatus(ctx, id, model.StatusCancelled)
}

// UpdateStatus writes a new lifecycle status directly.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) error {
	query := `UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("status", string(status)).
			Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id)
	}

	r.logger.Debug().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return nil
}

// MarkPaid sets payment_status to paid under the expected payment method.
// The WHERE payment_method guard is the safeguard against cross-method
// confirmation; re-confirming an already-paid order re-writes paid.
func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, method model.PaymentMethod, note string) (int64, error) {
	query := `
		UPDATE orders
		SET payment_status = 'paid',
			payment_note = CASE WHEN $3 <> '' THEN $3 ELSE payment_note END,
			updated_at = now()
		WHERE id = $1 AND payment_method = $2
	`

	tag, err := r.pool.Exec(ctx, query, id, method, note)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("method", string(method)).
			Msg("failed to mark order paid")
		return 0, fmt.Errorf("failed to mark order paid: %w", err)
	}

	r.logger.Debug().
		Str("order_id", id.String()).
		Str("method", string(method)).
		Int64("rows", tag.RowsAffected()).
		Msg("mark paid applied")

	return tag.RowsAffected(), nil
}

// CreateReview inserts a customer review for an order.
func (r *orderRepository) CreateReview(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, order_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, review.ID, review.OrderID, review.Rating,
		review.Comment, review.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", review.OrderID.String()).
			Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// scanOrder scans one order row in orderColumns order.
func (r *orderRepository) scanOrder(row pgx.Row) (*model.Order, error) {
	var order model.Order
	err := row.Scan(
		&order.ID, &order.CustomerName, &order.Phone, &order.Address,
		&order.Lat, &order.Lng, &order.Landmark, &order.Notes,
		&order.SubtotalPhp, &order.DiscountPhp, &order.DeliveryFeePhp,
		&order.TipPhp, &order.PriorityFeePhp, &order.TotalPhp,
		&order.PromoCode, &order.Status, &order.PaymentMethod, &order.PaymentStatus,
		&order.PaymentNote, &order.Scheduled, &order.CancelCutoff,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
