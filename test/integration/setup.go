package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_name VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL,
			address TEXT NOT NULL,
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			landmark TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			subtotal_php DOUBLE PRECISION NOT NULL,
			discount_php DOUBLE PRECISION NOT NULL DEFAULT 0,
			delivery_fee_php DOUBLE PRECISION NOT NULL,
			tip_php DOUBLE PRECISION NOT NULL DEFAULT 0,
			priority_fee_php DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_php DOUBLE PRECISION NOT NULL,
			promo_code VARCHAR(50),
			status VARCHAR(30) NOT NULL,
			payment_method VARCHAR(20) NOT NULL,
			payment_status VARCHAR(20) NOT NULL,
			payment_note TEXT NOT NULL DEFAULT '',
			scheduled_for TIMESTAMPTZ,
			cancel_cutoff TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			restaurant_slug VARCHAR(100) NOT NULL,
			restaurant_name VARCHAR(255) NOT NULL DEFAULT '',
			item_name VARCHAR(255) NOT NULL,
			unit_price_php DOUBLE PRECISION NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0)
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS customers (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL DEFAULT '',
			password_hash VARCHAR(100),
			loyalty_points INTEGER NOT NULL DEFAULT 0,
			referral_code VARCHAR(10),
			gateway_ref VARCHAR(100),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS promo_codes (
			code VARCHAR(50) PRIMARY KEY,
			discount_type VARCHAR(10) NOT NULL,
			discount_value DOUBLE PRECISION NOT NULL,
			min_subtotal_php DOUBLE PRECISION NOT NULL DEFAULT 0,
			usage_cap INTEGER NOT NULL DEFAULT 0,
			usage_count INTEGER NOT NULL DEFAULT 0,
			valid_from TIMESTAMPTZ NOT NULL,
			valid_until TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS restaurants (
			slug VARCHAR(100) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			commission_pct DOUBLE PRECISION NOT NULL DEFAULT 30,
			delivery_commission_pct DOUBLE PRECISION NOT NULL DEFAULT 0,
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			portal_user VARCHAR(100) NOT NULL DEFAULT '',
			portal_password_hash VARCHAR(100) NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			restaurant_slug VARCHAR(100) NOT NULL REFERENCES restaurants(slug),
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			cost_php DOUBLE PRECISION NOT NULL,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS drivers (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL UNIQUE,
			password_hash VARCHAR(100) NOT NULL,
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant ON menu_items(restaurant_slug);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedPromoCodes inserts test promo codes into the database.
func SeedPromoCodes(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	now := time.Now()

	promos := []struct {
		code        string
		kind        string
		value       float64
		minSubtotal float64
		usageCap    int
		validFrom   time.Time
		validUntil  time.Time
	}{
		{"SAVE10", "percent", 10, 0, 0, now.Add(-time.Hour), now.Add(24 * time.Hour)},
		{"PISO50", "flat", 50, 300, 100, now.Add(-time.Hour), now.Add(24 * time.Hour)},
		{"EXPIRED", "percent", 20, 0, 0, now.Add(-48 * time.Hour), now.Add(-24 * time.Hour)},
	}

	for _, p := range promos {
		_, err := pool.Exec(ctx,
			`INSERT INTO promo_codes (code, discount_type, discount_value, min_subtotal_php, usage_cap, valid_from, valid_until)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.code, p.kind, p.value, p.minSubtotal, p.usageCap, p.validFrom, p.validUntil,
		)
		if err != nil {
			t.Fatalf("failed to seed promo code %s: %v", p.code, err)
		}
	}
}

// SeedRestaurant inserts one restaurant with a small menu.
func SeedRestaurant(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO restaurants (slug, name, commission_pct, lat, lng, portal_user, portal_password_hash)
		 VALUES ('lutong-bahay', 'Lutong Bahay', 20, 14.5995, 120.9842, 'lutong-admin', '')`,
	)
	if err != nil {
		t.Fatalf("failed to seed restaurant: %v", err)
	}

	items := []struct {
		name     string
		category string
		costPhp  float64
	}{
		{"Adobo Rice Bowl", "mains", 250},
		{"Kare-Kare", "mains", 100},
		{"Halo-Halo", "dessert", 85.5},
	}

	for _, item := range items {
		_, err := pool.Exec(ctx,
			`INSERT INTO menu_items (id, restaurant_slug, name, category, cost_php)
			 VALUES (gen_random_uuid(), 'lutong-bahay', $1, $2, $3)`,
			item.name, item.category, item.costPhp,
		)
		if err != nil {
			t.Fatalf("failed to seed menu item %s: %v", item.name, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"reviews", "order_items", "orders", "menu_items", "restaurants", "promo_codes", "customers", "drivers"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
