package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kusina/internal/model"

	"github.com/rs/zerolog"
)

// StripeClient talks to the Stripe REST API with the secret key. The base
// URL is configurable so tests can point it at a fake server.
type StripeClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewStripeClient creates a Stripe API client.
func NewStripeClient(baseURL, secretKey string, logger zerolog.Logger) *StripeClient {
	return &StripeClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With().Str("gateway", "stripe").Logger(),
	}
}

type stripePaymentIntent struct {
	ID       string            `json:"id"`
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
}

type stripeCheckoutSession struct {
	ID            string `json:"id"`
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method"`
}

type stripePaymentMethod struct {
	ID   string `json:"id"`
	Card struct {
		Brand string `json:"brand"`
		Last4 string `json:"last4"`
	} `json:"card"`
}

func (c *StripeClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("stripe request failed")
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("stripe returned non-200")
		return fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return nil
}

// cardVerifier confirms card payments by retrieving the PaymentIntent.
type cardVerifier struct {
	client *StripeClient
	logger zerolog.Logger
}

// NewCardVerifier creates the card (PaymentIntent) verifier.
func NewCardVerifier(client *StripeClient, logger zerolog.Logger) Verifier {
	return &cardVerifier{
		client: client,
		logger: logger.With().Str("verifier", "card").Logger(),
	}
}

// Method is the payment rail this verifier confirms.
func (v *cardVerifier) Method() model.PaymentMethod {
	return model.PaymentCard
}

// Verify retrieves the PaymentIntent and requires a succeeded status whose
// order-reference metadata matches the order being confirmed.
func (v *cardVerifier) Verify(ctx context.Context, order *model.Order, reference string) (*Confirmation, error) {
	if reference == "" {
		return nil, model.ErrPaymentRejected
	}

	var intent stripePaymentIntent
	if err := v.client.get(ctx, "/v1/payment_intents/"+reference, &intent); err != nil {
		return nil, err
	}

	if intent.Status != "succeeded" {
		v.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("payment_intent", reference).
			Str("status", intent.Status).
			Msg("payment intent not succeeded")
		return nil, model.ErrPaymentRejected
	}

	if intent.Metadata["order_id"] != order.ID.String() {
		v.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("payment_intent", reference).
			Msg("payment intent metadata does not reference this order")
		return nil, model.ErrPaymentRejected
	}

	return &Confirmation{Method: model.PaymentCard, Note: "stripe:" + intent.ID}, nil
}

// sessionVerifier confirms card payments made through a hosted Checkout
// session redirect.
type sessionVerifier struct {
	client *StripeClient
	logger zerolog.Logger
}

// NewSessionVerifier creates the hosted-checkout-session verifier.
func NewSessionVerifier(client *StripeClient, logger zerolog.Logger) Verifier {
	return &sessionVerifier{
		client: client,
		logger: logger.With().Str("verifier", "session").Logger(),
	}
}

// Method is the payment rail this verifier confirms.
func (v *sessionVerifier) Method() model.PaymentMethod {
	return model.PaymentCard
}

// Verify retrieves the checkout session and requires payment_status "paid".
// Card brand and last-4 are fetched best-effort for the receipt; a failure
// there does not fail the confirmation.
func (v *sessionVerifier) Verify(ctx context.Context, order *model.Order, reference string) (*Confirmation, error) {
	if reference == "" {
		return nil, model.ErrPaymentRejected
	}

	var session stripeCheckoutSession
	if err := v.client.get(ctx, "/v1/checkout/sessions/"+reference, &session); err != nil {
		return nil, err
	}

	if session.PaymentStatus != "paid" {
		v.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("session", reference).
			Str("payment_status", session.PaymentStatus).
			Msg("checkout session not paid")
		return nil, model.ErrPaymentRejected
	}

	note := "stripe-session:" + session.ID
	if session.PaymentMethod != "" {
		var pm stripePaymentMethod
		if err := v.client.get(ctx, "/v1/payment_methods/"+session.PaymentMethod, &pm); err == nil && pm.Card.Last4 != "" {
			note = fmt.Sprintf("%s ****%s", pm.Card.Brand, pm.Card.Last4)
		}
	}

	return &Confirmation{Method: model.PaymentCard, Note: note}, nil
}
