package router

import (
	"net/http"
	"strings"

	"kusina/internal/auth"
	"kusina/internal/handler"
	"kusina/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Menu     *handler.MenuHandler
	Order    *handler.OrderHandler
	Quote    *handler.QuoteHandler
	Promo    *handler.PromoHandler
	Payment  *handler.PaymentHandler
	Auth     *handler.AuthHandler
	Customer *handler.CustomerHandler
	Driver   *handler.DriverHandler
	Staff    *handler.StaffHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, issuer *auth.TokenIssuer, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/menu/", h.Menu.Get)

	// Order handler function
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if r.Method == http.MethodPost && (path == "/api/orders" || path == "/api/orders/") {
			h.Order.Checkout(w, r)
			return
		}
		if r.Method == http.MethodPost && path == "/api/orders/lookup" {
			h.Order.Lookup(w, r)
			return
		}
		if r.Method == http.MethodPost && path == "/api/orders/cancel" {
			h.Order.Cancel(w, r)
			return
		}
		if r.Method == http.MethodPost && strings.HasSuffix(path, "/review") {
			h.Order.Review(w, r)
			return
		}

		// Everything else under /api/orders/ is a detail fetch
		if strings.HasPrefix(path, "/api/orders/") && path != "/api/orders/" {
			h.Order.GetByID(w, r)
			return
		}

		http.Error(w, "not found", http.StatusNotFound)
	}

	// Register order routes (both with and without trailing slash)
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	mux.HandleFunc("/api/quote", h.Quote.Quote)
	mux.HandleFunc("/api/promos/validate", h.Promo.Validate)
	mux.HandleFunc("/api/payments/", h.Payment.Confirm)
	mux.HandleFunc("/api/auth/login", h.Auth.Login)
	mux.HandleFunc("/api/referral", h.Customer.Referral)

	// Portal routes carry their own bearer requirement
	driverAuth := middleware.BearerAuth(issuer, auth.PortalDriver, logger)
	mux.Handle("/api/driver/location", driverAuth(http.HandlerFunc(h.Driver.UpdateLocation)))

	staffAuth := middleware.BearerAuth(issuer, auth.PortalRestaurant, logger)
	mux.Handle("/api/staff/orders/", staffAuth(http.HandlerFunc(h.Staff.UpdateStatus)))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var root http.Handler = mux
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}
