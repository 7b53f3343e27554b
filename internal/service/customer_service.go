package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"kusina/internal/model"
	"kusina/internal/phone"
	"kusina/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// referralAlphabet excludes nothing: codes are 6 uppercase alphanumerics.
const referralAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// referralLength is the referral code length.
const referralLength = 6

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(customerRepo repository.CustomerRepository, logger zerolog.Logger) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// ReferralCode returns the customer's referral code. The customer row is
// created on first contact and the code is generated once and persisted.
func (s *customerService) ReferralCode(ctx context.Context, phoneNumber string) (string, error) {
	if len(phone.Normalize(phoneNumber)) < 4 {
		return "", model.Validationf("a valid phone number is required")
	}

	customer, err := s.customerRepo.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return "", fmt.Errorf("failed to look up customer: %w", err)
	}

	if customer == nil {
		code, err := generateReferralCode()
		if err != nil {
			return "", err
		}
		customer = &model.Customer{
			ID:           uuid.New(),
			Phone:        phoneNumber,
			ReferralCode: &code,
			CreatedAt:    time.Now(),
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			return "", fmt.Errorf("failed to create customer: %w", err)
		}
		s.logger.Info().Str("customer_id", customer.ID.String()).Msg("customer created for referral lookup")
		return code, nil
	}

	if customer.ReferralCode != nil {
		return *customer.ReferralCode, nil
	}

	code, err := generateReferralCode()
	if err != nil {
		return "", err
	}
	if err := s.customerRepo.SetReferralCode(ctx, customer.ID, code); err != nil {
		return "", fmt.Errorf("failed to persist referral code: %w", err)
	}

	s.logger.Info().Str("customer_id", customer.ID.String()).Msg("referral code generated")

	return code, nil
}

// generateReferralCode draws 6 uppercase alphanumeric characters.
func generateReferralCode() (string, error) {
	code := make([]byte, referralLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referralAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate referral code: %w", err)
		}
		code[i] = referralAlphabet[n.Int64()]
	}
	return string(code), nil
}
