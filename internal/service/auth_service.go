package service

import (
	"context"
	"fmt"
	"strconv"

	"kusina/internal/auth"
	"kusina/internal/model"
	"kusina/internal/repository"

	"github.com/rs/zerolog"
)

// authService implements AuthService across the three portals.
type authService struct {
	customerRepo   repository.CustomerRepository
	driverRepo     repository.DriverRepository
	restaurantRepo repository.RestaurantRepository
	issuer         *auth.TokenIssuer
	logger         zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	customerRepo repository.CustomerRepository,
	driverRepo repository.DriverRepository,
	restaurantRepo repository.RestaurantRepository,
	issuer *auth.TokenIssuer,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		customerRepo:   customerRepo,
		driverRepo:     driverRepo,
		restaurantRepo: restaurantRepo,
		issuer:         issuer,
		logger:         logger.With().Str("service", "auth").Logger(),
	}
}

// Login verifies a password for the given portal and returns a signed
// bearer token. Wrong identifier and wrong password are indistinguishable.
func (s *authService) Login(ctx context.Context, portal auth.PortalType, identifier, password string) (string, error) {
	if identifier == "" || password == "" {
		return "", model.ErrUnauthorised
	}

	var id, hash string

	switch portal {
	case auth.PortalCustomer:
		customer, err := s.customerRepo.GetByEmail(ctx, identifier)
		if err != nil {
			return "", fmt.Errorf("failed to log in: %w", err)
		}
		if customer == nil {
			customer, err = s.customerRepo.GetByPhone(ctx, identifier)
			if err != nil {
				return "", fmt.Errorf("failed to log in: %w", err)
			}
		}
		if customer == nil || customer.PasswordHash == nil {
			return "", model.ErrUnauthorised
		}
		id, hash = customer.ID.String(), *customer.PasswordHash

	case auth.PortalDriver:
		driver, err := s.driverRepo.GetByPhone(ctx, identifier)
		if err != nil {
			return "", fmt.Errorf("failed to log in: %w", err)
		}
		if driver == nil {
			return "", model.ErrUnauthorised
		}
		id, hash = strconv.FormatInt(driver.ID, 10), driver.PasswordHash

	case auth.PortalRestaurant:
		restaurant, err := s.restaurantRepo.GetByPortalUser(ctx, identifier)
		if err != nil {
			return "", fmt.Errorf("failed to log in: %w", err)
		}
		if restaurant == nil {
			return "", model.ErrUnauthorised
		}
		id, hash = restaurant.Slug, restaurant.PortalPasswordHash

	default:
		return "", fmt.Errorf("unknown portal type: %s", portal)
	}

	if !auth.CheckPassword(hash, password) {
		s.logger.Warn().Str("portal", string(portal)).Msg("failed login attempt")
		return "", model.ErrUnauthorised
	}

	token, err := s.issuer.Issue(portal, id)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info().Str("portal", string(portal)).Str("id", id).Msg("portal login")

	return token, nil
}
