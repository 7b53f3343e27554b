package payment

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kusina/internal/model"

	"github.com/rs/zerolog"
)

// gcashVerifier confirms GCash payments through the PayMongo API.
type gcashVerifier struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewGCashVerifier creates the GCash (PayMongo) verifier. PayMongo uses
// basic auth with the secret key as username.
func NewGCashVerifier(baseURL, secretKey string, logger zerolog.Logger) Verifier {
	return &gcashVerifier{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With().Str("verifier", "gcash").Logger(),
	}
}

type payMongoPayment struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Status string `json:"status"`
		} `json:"attributes"`
	} `json:"data"`
}

// Method is the payment rail this verifier confirms.
func (v *gcashVerifier) Method() model.PaymentMethod {
	return model.PaymentGCash
}

// Verify retrieves the PayMongo payment object and requires status "paid".
func (v *gcashVerifier) Verify(ctx context.Context, order *model.Order, reference string) (*Confirmation, error) {
	if reference == "" {
		return nil, model.ErrPaymentRejected
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/v1/payments/"+reference, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(v.secretKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Error().Err(err).Msg("paymongo request failed")
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn().Int("status", resp.StatusCode).Msg("paymongo returned non-200")
		return nil, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}

	var payment payMongoPayment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if payment.Data.Attributes.Status != "paid" {
		v.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("payment", reference).
			Str("status", payment.Data.Attributes.Status).
			Msg("paymongo payment not paid")
		return nil, model.ErrPaymentRejected
	}

	return &Confirmation{Method: model.PaymentGCash, Note: "paymongo:" + payment.Data.ID}, nil
}
