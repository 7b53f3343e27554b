package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kusina/internal/auth"
	"kusina/internal/config"
	"kusina/internal/database"
	"kusina/internal/handler"
	"kusina/internal/payment"
	"kusina/internal/pricing"
	"kusina/internal/promo"
	"kusina/internal/repository"
	"kusina/internal/router"
	"kusina/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting kusina API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	orderRepo := repository.NewOrderRepository(pool, logger)
	customerRepo := repository.NewCustomerRepository(pool, logger)
	promoRepo := repository.NewPromoRepository(pool, logger)
	restaurantRepo := repository.NewRestaurantRepository(pool, logger)
	driverRepo := repository.NewDriverRepository(pool, logger)

	// Delivery fee policy from configuration
	policy := pricing.Policy{
		ZoneName:     "core",
		MinFeePhp:    cfg.Delivery.MinFeePhp,
		PerKmRatePhp: cfg.Delivery.PerKmRatePhp,
		MaxRadiusKm:  cfg.Delivery.MaxRadiusKm,
		Hub:          pricing.Point{Lat: cfg.Delivery.HubLat, Lng: cfg.Delivery.HubLng},
	}

	validator := promo.NewValidator(promoRepo, logger)
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMins)*time.Minute)

	// Payment verifiers, keyed by the confirmation endpoint's provider segment
	stripeClient := payment.NewStripeClient(cfg.Stripe.BaseURL, cfg.Stripe.SecretKey, logger)
	verifiers := map[string]payment.Verifier{
		"card":    payment.NewCardVerifier(stripeClient, logger),
		"session": payment.NewSessionVerifier(stripeClient, logger),
		"gcash":   payment.NewGCashVerifier(cfg.PayMongo.BaseURL, cfg.PayMongo.SecretKey, logger),
		"crypto":  payment.NewCryptoVerifier(logger),
		"paypal":  payment.NewPayPalVerifier(cfg.PayPal.BaseURL, cfg.PayPal.ClientID, cfg.PayPal.Secret, logger),
	}

	// Initialize services
	orderService := service.NewOrderService(
		orderRepo,
		restaurantRepo,
		customerRepo,
		promoRepo,
		validator,
		policy,
		cfg.Delivery.PriorityFeePhp,
		time.Duration(cfg.Delivery.CancelWindowMinutes)*time.Minute,
		logger,
	)
	paymentService := service.NewPaymentService(orderRepo, verifiers, logger)
	menuService := service.NewMenuService(restaurantRepo, cfg.Delivery.DefaultCommissionPct, logger)
	authService := service.NewAuthService(customerRepo, driverRepo, restaurantRepo, issuer, logger)
	customerService := service.NewCustomerService(customerRepo, logger)
	driverService := service.NewDriverService(driverRepo, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Menu:     handler.NewMenuHandler(menuService, logger),
		Order:    handler.NewOrderHandler(orderService, logger),
		Quote:    handler.NewQuoteHandler(orderService, logger),
		Promo:    handler.NewPromoHandler(validator, logger),
		Payment:  handler.NewPaymentHandler(paymentService, logger),
		Auth:     handler.NewAuthHandler(authService, logger),
		Customer: handler.NewCustomerHandler(customerService, logger),
		Driver:   handler.NewDriverHandler(driverService, logger),
		Staff:    handler.NewStaffHandler(orderService, logger),
	}

	mux := router.New(handlers, issuer, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
