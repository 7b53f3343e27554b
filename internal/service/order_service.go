package service

import (
	"context"
	"fmt"
	"time"

	"kusina/internal/model"
	"kusina/internal/phone"
	"kusina/internal/pricing"
	"kusina/internal/promo"
	"kusina/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// lookupLimit bounds how many orders a guest phone lookup returns.
const lookupLimit = 20

// orderService implements OrderService.
type orderService struct {
	orderRepo      repository.OrderRepository
	restaurantRepo repository.RestaurantRepository
	customerRepo   repository.CustomerRepository
	promoRepo      repository.PromoRepository
	validator      promo.Validator
	policy         pricing.Policy
	priorityFeePhp float64
	cancelWindow   time.Duration
	now            func() time.Time
	logger         zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	restaurantRepo repository.RestaurantRepository,
	customerRepo repository.CustomerRepository,
	promoRepo repository.PromoRepository,
	validator promo.Validator,
	policy pricing.Policy,
	priorityFeePhp float64,
	cancelWindow time.Duration,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		restaurantRepo: restaurantRepo,
		customerRepo:   customerRepo,
		promoRepo:      promoRepo,
		validator:      validator,
		policy:         policy,
		priorityFeePhp: priorityFeePhp,
		cancelWindow:   cancelWindow,
		now:            time.Now,
		logger:         logger.With().Str("service", "order").Logger(),
	}
}

// Checkout creates a new order with server-side pricing.
func (s *orderService) Checkout(ctx context.Context, req *model.CheckoutRequest) (*model.OrderResponse, error) {
	if err := s.validateCheckout(req); err != nil {
		return nil, err
	}

	var subtotal float64
	for _, item := range req.Items {
		subtotal += item.UnitPricePhp * float64(item.Quantity)
	}

	var discount float64
	var promoCode *string
	if req.PromoCode != nil && *req.PromoCode != "" {
		d, err := s.validator.Validate(ctx, *req.PromoCode, subtotal)
		if err != nil {
			s.logger.Warn().
				Str("promo_code", *req.PromoCode).
				Err(err).
				Msg("promo code rejected at checkout")
			return nil, err
		}
		discount = d.AmountPhp
		promoCode = &d.Code
	}

	quote, err := s.quoteFor(ctx, req.Items, req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}

	var priorityFee float64
	if req.Priority {
		priorityFee = s.priorityFeePhp
	}

	now := s.now()
	cutoff := now.Add(s.cancelWindow)

	order := &model.Order{
		ID:             uuid.New(),
		CustomerName:   req.CustomerName,
		Phone:          req.Phone,
		Address:        req.Address,
		Lat:            req.Lat,
		Lng:            req.Lng,
		Landmark:       req.Landmark,
		Notes:          req.Notes,
		SubtotalPhp:    subtotal,
		DiscountPhp:    discount,
		DeliveryFeePhp: quote.FeePhp,
		TipPhp:         req.TipPhp,
		PriorityFeePhp: priorityFee,
		TotalPhp:       subtotal - discount + quote.FeePhp + req.TipPhp + priorityFee,
		PromoCode:      promoCode,
		Status:         model.StatusPending,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  model.PaymentUnpaid,
		Scheduled:      req.ScheduledFor,
		CancelCutoff:   &cutoff,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			RestaurantSlug: item.RestaurantSlug,
			RestaurantName: item.RestaurantName,
			ItemName:       item.ItemName,
			UnitPricePhp:   item.UnitPricePhp,
			Quantity:       item.Quantity,
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Post-commit side effects are best-effort; the order already exists.
	if promoCode != nil {
		if incErr := s.promoRepo.IncrementUsage(ctx, *promoCode); incErr != nil {
			s.logger.Error().Err(incErr).Str("promo_code", *promoCode).Msg("failed to increment promo usage")
		}
	}
	s.awardLoyaltyPoints(ctx, req.Phone, subtotal)

	eta := pricing.EstimateETA(quote.DistanceKm, req.Priority)

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Float64("total_php", order.TotalPhp).
		Int("item_count", len(items)).
		Msg("order created")

	return &model.OrderResponse{
		Order: *order,
		Items: items,
		ETA:   &model.ETAView{MinMinutes: eta.MinMinutes, MaxMinutes: eta.MaxMinutes},
	}, nil
}

// GetByID retrieves an order with its items.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// Quote computes the delivery fee and ETA for a dropoff point.
func (s *orderService) Quote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error) {
	var pickup *pricing.Point
	if req.Restaurant != "" {
		rc, err := s.restaurantRepo.GetBySlug(ctx, req.Restaurant)
		if err != nil {
			return nil, err
		}
		if rc != nil && rc.Lat != nil && rc.Lng != nil {
			pickup = &pricing.Point{Lat: *rc.Lat, Lng: *rc.Lng}
		}
	}

	quote := s.policy.QuoteBetween(pickup, pricing.Point{Lat: req.Lat, Lng: req.Lng})
	eta := pricing.EstimateETA(quote.DistanceKm, req.Priority)

	return &model.QuoteResponse{
		DistanceKm: quote.DistanceKm,
		FeePhp:     quote.FeePhp,
		Zone:       quote.Zone,
		ETA:        model.ETAView{MinMinutes: eta.MinMinutes, MaxMinutes: eta.MaxMinutes},
	}, nil
}

// Lookup returns recent orders matching a guest's phone by tail. Each
// candidate is re-verified with the full matching heuristic.
func (s *orderService) Lookup(ctx context.Context, phoneNumber string) ([]model.Order, error) {
	normalized := phone.Normalize(phoneNumber)
	if len(normalized) < 4 {
		return nil, model.Validationf("phone number is required")
	}

	tail := normalized
	if len(tail) > 6 {
		tail = tail[len(tail)-6:]
	}

	candidates, err := s.orderRepo.ListByPhoneTail(ctx, tail, lookupLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up orders")
		return nil, fmt.Errorf("failed to look up orders: %w", err)
	}

	orders := make([]model.Order, 0, len(candidates))
	for _, o := range candidates {
		if phone.Match(phoneNumber, o.Phone) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// Cancel applies a guest self-service cancellation. Not-found and phone
// mismatch are indistinguishable to the caller.
func (s *orderService) Cancel(ctx context.Context, req *model.CancelRequest) (*model.CancelResponse, error) {
	id, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, model.ErrOrderNotFound
	}

	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", req.OrderID).Msg("failed to load order for cancel")
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}
	if order == nil || !phone.Match(req.Phone, order.Phone) {
		return nil, model.ErrOrderNotFound
	}

	// Cancelling twice is idempotent.
	if order.Status == model.StatusCancelled {
		return &model.CancelResponse{OK: true, Status: model.StatusCancelled}, nil
	}

	if !order.Status.Cancellable() {
		s.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("status", string(order.Status)).
			Msg("cancel rejected: terminal status")
		return nil, model.ErrNotCancellable
	}

	cutoff := order.CreatedAt.Add(s.cancelWindow)
	if order.CancelCutoff != nil {
		cutoff = *order.CancelCutoff
	}
	if s.now().After(cutoff) {
		s.logger.Warn().
			Str("order_id", order.ID.String()).
			Time("cutoff", cutoff).
			Msg("cancel rejected: window closed")
		return nil, model.ErrCancelWindowClosed
	}

	if err := s.orderRepo.MarkCancelled(ctx, order.ID); err != nil {
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	s.logger.Info().Str("order_id", order.ID.String()).Msg("order cancelled by customer")

	return &model.CancelResponse{OK: true, Status: model.StatusCancelled}, nil
}

// SubmitReview records a review for an order, guarded by phone-tail match.
func (s *orderService) SubmitReview(ctx context.Context, orderID uuid.UUID, req *model.ReviewRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return model.Validationf("rating must be between 1 and 5")
	}

	order, _, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to submit review: %w", err)
	}
	if order == nil || !phone.Match(req.Phone, order.Phone) {
		return model.ErrOrderNotFound
	}

	review := &model.Review{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: s.now(),
	}

	if err := s.orderRepo.CreateReview(ctx, review); err != nil {
		return fmt.Errorf("failed to submit review: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("rating", req.Rating).
		Msg("review submitted")

	return nil
}

// UpdateStatus writes a lifecycle status directly. Transition legality is
// not checked; the staff and driver portals own their sequencing.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error {
	if !status.Valid() {
		return model.Validationf("unknown order status: %s", status)
	}
	return s.orderRepo.UpdateStatus(ctx, orderID, status)
}

// quoteFor computes the delivery fee for a checkout. The pickup point is the
// first item's restaurant when it has coordinates, otherwise the hub; a
// missing dropoff falls back to the minimum fee at zero distance.
func (s *orderService) quoteFor(ctx context.Context, items []model.CheckoutItem, lat, lng *float64) (pricing.FeeQuote, error) {
	if lat == nil || lng == nil {
		return s.policy.Quote(0), nil
	}

	var pickup *pricing.Point
	if len(items) > 0 {
		rc, err := s.restaurantRepo.GetBySlug(ctx, items[0].RestaurantSlug)
		if err != nil {
			return pricing.FeeQuote{}, err
		}
		if rc != nil && rc.Lat != nil && rc.Lng != nil {
			pickup = &pricing.Point{Lat: *rc.Lat, Lng: *rc.Lng}
		}
	}

	return s.policy.QuoteBetween(pickup, pricing.Point{Lat: *lat, Lng: *lng}), nil
}

// awardLoyaltyPoints credits one point per 100 pesos of subtotal to a known
// customer. Best-effort: guests without a customer row earn nothing.
func (s *orderService) awardLoyaltyPoints(ctx context.Context, phoneNumber string, subtotal float64) {
	points := int(subtotal / 100)
	if points == 0 {
		return
	}

	customer, err := s.customerRepo.GetByPhone(ctx, phoneNumber)
	if err != nil || customer == nil {
		return
	}
	if err := s.customerRepo.AddLoyaltyPoints(ctx, customer.ID, points); err != nil {
		s.logger.Error().Err(err).Str("customer_id", customer.ID.String()).Msg("failed to add loyalty points")
	}
}

// validateCheckout validates the checkout request.
func (s *orderService) validateCheckout(req *model.CheckoutRequest) error {
	if req == nil {
		return model.Validationf("checkout request is nil")
	}
	if req.CustomerName == "" {
		return model.Validationf("customer name is required")
	}
	if len(phone.Normalize(req.Phone)) < 4 {
		return model.Validationf("a valid phone number is required")
	}
	if req.Address == "" {
		return model.Validationf("delivery address is required")
	}
	if len(req.Items) == 0 {
		return model.Validationf("order must contain at least one item")
	}
	if !req.PaymentMethod.Valid() {
		return model.Validationf("unknown payment method: %s", req.PaymentMethod)
	}
	if req.TipPhp < 0 {
		return model.Validationf("tip cannot be negative")
	}

	for i, item := range req.Items {
		if item.ItemName == "" {
			return model.Validationf("item %d: item name is required", i)
		}
		if item.RestaurantSlug == "" {
			return model.Validationf("item %d: restaurant is required", i)
		}
		if item.UnitPricePhp < 0 {
			return model.Validationf("item %d: unit price cannot be negative", i)
		}
		if item.Quantity <= 0 {
			return model.Validationf("item %d: quantity must be greater than zero", i)
		}
	}

	return nil
}
