package repository

import (
	"context"
	"errors"
	"fmt"

	"kusina/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// driverRepository implements the DriverRepository interface using PostgreSQL.
type driverRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDriverRepository creates a new PostgreSQL-backed driver repository.
func NewDriverRepository(pool *pgxpool.Pool, logger zerolog.Logger) DriverRepository {
	return &driverRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "driver").Logger(),
	}
}

// GetByPhone retrieves a driver by phone.
func (r *driverRepository) GetByPhone(ctx context.Context, phone string) (*model.Driver, error) {
	query := `
		SELECT id, name, phone, password_hash, lat, lng, updated_at
		FROM drivers
		WHERE phone = $1
	`

	var d model.Driver
	err := r.pool.QueryRow(ctx, query, phone).Scan(
		&d.ID, &d.Name, &d.Phone, &d.PasswordHash, &d.Lat, &d.Lng, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to get driver")
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	return &d, nil
}

// UpdateLocation writes the driver's last-known position. Plain REST write;
// there is no realtime tracking channel.
func (r *driverRepository) UpdateLocation(ctx context.Context, id int64, lat, lng float64) error {
	query := `UPDATE drivers SET lat = $2, lng = $3, updated_at = now() WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, lat, lng)
	if err != nil {
		r.logger.Error().Err(err).Int64("driver_id", id).Msg("failed to update driver location")
		return fmt.Errorf("failed to update driver location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("driver %d not found", id)
	}

	return nil
}
