package service

import (
	"context"

	"kusina/internal/model"
	"kusina/internal/repository"

	"github.com/rs/zerolog"
)

// driverService implements DriverService.
type driverService struct {
	driverRepo repository.DriverRepository
	logger     zerolog.Logger
}

// NewDriverService creates a new driver service.
func NewDriverService(driverRepo repository.DriverRepository, logger zerolog.Logger) DriverService {
	return &driverService{
		driverRepo: driverRepo,
		logger:     logger.With().Str("service", "driver").Logger(),
	}
}

// UpdateLocation writes a driver's last-known position.
func (s *driverService) UpdateLocation(ctx context.Context, driverID int64, lat, lng float64) error {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return model.Validationf("invalid coordinates")
	}

	if err := s.driverRepo.UpdateLocation(ctx, driverID, lat, lng); err != nil {
		s.logger.Error().Err(err).Int64("driver_id", driverID).Msg("failed to update driver location")
		return err
	}

	return nil
}
