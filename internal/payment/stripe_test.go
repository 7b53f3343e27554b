package payment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kusina/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(method model.PaymentMethod) *model.Order {
	return &model.Order{
		ID:            uuid.New(),
		PaymentMethod: method,
		PaymentStatus: model.PaymentUnpaid,
		CreatedAt:     time.Now(),
	}
}

func TestCardVerifier_Succeeded(t *testing.T) {
	order := testOrder(model.PaymentCard)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_abc", r.Header.Get("Authorization"))
		fmt.Fprintf(w, `{"id":"pi_123","status":"succeeded","metadata":{"order_id":%q}}`, order.ID)
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_abc", zerolog.Nop())
	v := NewCardVerifier(client, zerolog.Nop())

	conf, err := v.Verify(context.Background(), order, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentCard, conf.Method)
	assert.Equal(t, "stripe:pi_123", conf.Note)
}

func TestCardVerifier_NotSucceeded(t *testing.T) {
	order := testOrder(model.PaymentCard)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"id":"pi_123","status":"requires_payment_method","metadata":{"order_id":%q}}`, order.ID)
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_abc", zerolog.Nop())
	v := NewCardVerifier(client, zerolog.Nop())

	conf, err := v.Verify(context.Background(), order, "pi_123")
	assert.Nil(t, conf)
	assert.ErrorIs(t, err, model.ErrPaymentRejected)
}

func TestCardVerifier_MetadataMismatch(t *testing.T) {
	order := testOrder(model.PaymentCard)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"pi_123","status":"succeeded","metadata":{"order_id":"some-other-order"}}`)
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_abc", zerolog.Nop())
	v := NewCardVerifier(client, zerolog.Nop())

	conf, err := v.Verify(context.Background(), order, "pi_123")
	assert.Nil(t, conf)
	assert.ErrorIs(t, err, model.ErrPaymentRejected)
}

func TestCardVerifier_GatewayDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_abc", zerolog.Nop())
	v := NewCardVerifier(client, zerolog.Nop())

	conf, err := v.Verify(context.Background(), testOrder(model.PaymentCard), "pi_123")
	assert.Nil(t, conf)
	assert.ErrorIs(t, err, ErrGateway)
}

func TestCardVerifier_EmptyReference(t *testing.T) {
	client := NewStripeClient("http://unused", "sk_test_abc", zerolog.Nop())
	v := NewCardVerifier(client, zerolog.Nop())

	conf, err := v.Verify(context.Background(), testOrder(model.PaymentCard), "")
	assert.Nil(t, conf)
	assert.ErrorIs(t, err, model.ErrPaymentRejected)
}

func TestSessionVerifier_PaidWithCardDetails(t *testing.T) {
	order := testOrder(model.PaymentCard)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/checkout/sessions/cs_123":
			fmt.Fprint(w, `{"id":"cs_123","payment_status":"paid","payment_method":"pm_9"}`)
		case "/v1/payment_methods/pm_9":
			fmt.Fprint(w, `{"id":"pm_9","card":{"brand":"visa","last4":"4242"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_abc", zerolog.Nop())
	v := NewSessionVerifier(client, zerolog.Nop())

	conf, err := v.Verify(context.Background(), order, "cs_123")
	require.NoError(t, err)
	assert.Equal(t, "visa ****4242", conf.Note)
}

func TestSessionVerifier_CardDetailFailureIsNotFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/checkout/sessions/cs_123":
			fmt.Fprint(w, `{"id":"cs_123","payment_status":"paid","payment_method":"pm_9"}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_abc", zerolog.Nop())
	v := NewSessionVerifier(client, zerolog.Nop())

	conf, err := v.Verify(context.Background(), testOrder(model.PaymentCard), "cs_123")
	require.NoError(t, err)
	assert.Equal(t, "stripe-session:cs_123", conf.Note)
}

func TestSessionVerifier_Unpaid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"cs_123","payment_status":"unpaid"}`)
	}))
	defer server.Close()

	client := NewStripeClient(server.URL, "sk_test_abc", zerolog.Nop())
	v := NewSessionVerifier(client, zerolog.Nop())

	conf, err := v.Verify(context.Background(), testOrder(model.PaymentCard), "cs_123")
	assert.Nil(t, conf)
	assert.ErrorIs(t, err, model.ErrPaymentRejected)
}
