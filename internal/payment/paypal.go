package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kusina/internal/model"

	"github.com/rs/zerolog"
)

// paypalVerifier captures PayPal orders. Each verification obtains a fresh
// client-credentials token and then calls the capture endpoint; retried
// capture calls are deduplicated on PayPal's side, not here.
type paypalVerifier struct {
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewPayPalVerifier creates the PayPal verifier. The base URL selects
// sandbox or production.
func NewPayPalVerifier(baseURL, clientID, secret string, logger zerolog.Logger) Verifier {
	return &paypalVerifier{
		baseURL:  baseURL,
		clientID: clientID,
		secret:   secret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With().Str("verifier", "paypal").Logger(),
	}
}

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type paypalCaptureResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Method is the payment rail this verifier confirms.
func (v *paypalVerifier) Method() model.PaymentMethod {
	return model.PaymentPayPal
}

func (v *paypalVerifier) accessToken(ctx context.Context) (string, error) {
	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/v1/oauth2/token", body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.SetBasicAuth(v.clientID, v.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Error().Err(err).Msg("paypal token request failed")
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn().Int("status", resp.StatusCode).Msg("paypal token request returned non-200")
		return "", fmt.Errorf("%w: token status %d", ErrGateway, resp.StatusCode)
	}

	var token paypalTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrGateway)
	}
	return token.AccessToken, nil
}

// Verify obtains an OAuth token and captures the PayPal order; only a
// COMPLETED capture confirms payment.
func (v *paypalVerifier) Verify(ctx context.Context, order *model.Order, reference string) (*Confirmation, error) {
	if reference == "" {
		return nil, model.ErrPaymentRejected
	}

	token, err := v.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", v.baseURL, reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader("{}"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		v.logger.Error().Err(err).Str("paypal_order", reference).Msg("paypal capture failed")
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		v.logger.Warn().
			Int("status", resp.StatusCode).
			Str("paypal_order", reference).
			Msg("paypal capture returned non-2xx")
		return nil, fmt.Errorf("%w: capture status %d", ErrGateway, resp.StatusCode)
	}

	var capture paypalCaptureResponse
	if err := json.NewDecoder(resp.Body).Decode(&capture); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if capture.Status != "COMPLETED" {
		v.logger.Warn().
			Str("order_id", order.ID.String()).
			Str("paypal_order", reference).
			Str("status", capture.Status).
			Msg("paypal capture not completed")
		return nil, model.ErrPaymentRejected
	}

	return &Confirmation{Method: model.PaymentPayPal, Note: "paypal:" + capture.ID}, nil
}
