package model

import "time"

// RestaurantConfig holds per-restaurant pricing and portal settings.
// A missing row implies the default commission percentage.
type RestaurantConfig struct {
	Slug                  string   `json:"slug" db:"slug"`
	Name                  string   `json:"name" db:"name"`
	CommissionPct         float64  `json:"commissionPct" db:"commission_pct"`
	DeliveryCommissionPct float64  `json:"deliveryCommissionPct" db:"delivery_commission_pct"`
	Lat                   *float64 `json:"lat,omitempty" db:"lat"`
	Lng                   *float64 `json:"lng,omitempty" db:"lng"`
	PortalUser            string   `json:"-" db:"portal_user"`
	PortalPasswordHash    string   `json:"-" db:"portal_password_hash"`
}

// MenuItem is a dish as stored, priced at the restaurant's cost.
type MenuItem struct {
	ID             int64     `json:"id" db:"id"`
	RestaurantSlug string    `json:"restaurantSlug" db:"restaurant_slug"`
	Name           string    `json:"name" db:"name"`
	Category       string    `json:"category" db:"category"`
	CostPhp        float64   `json:"-" db:"cost_php"`
	Available      bool      `json:"available" db:"available"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// MenuItemView is a dish as shown to customers, with the commission markup
// already applied.
type MenuItemView struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	PricePhp  float64 `json:"pricePhp"`
	Available bool    `json:"available"`
}

// MenuResponse is the customer-facing menu listing for one restaurant.
type MenuResponse struct {
	Restaurant string         `json:"restaurant"`
	Items      []MenuItemView `json:"items"`
}
