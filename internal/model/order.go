package model

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the delivery lifecycle state of an order.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusReady          Status = "ready"
	StatusAssigned       Status = "assigned"
	StatusPicked         Status = "picked"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// Terminal reports whether the status ends the order lifecycle.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Cancellable reports whether a customer cancellation may still be applied.
// Status writes from the staff and driver portals are direct; there is no
// full transition validator.
func (s Status) Cancellable() bool {
	return s != StatusDelivered && s != StatusCancelled
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
		StatusAssigned, StatusPicked, StatusOutForDelivery,
		StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod identifies the rail an order is paid through.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentGCash  PaymentMethod = "gcash"
	PaymentCrypto PaymentMethod = "crypto"
	PaymentPayPal PaymentMethod = "paypal"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentGCash, PaymentCrypto, PaymentPayPal:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of an order.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Order represents a customer order. Orders are never deleted, only
// status-transitioned.
type Order struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	CustomerName   string        `json:"customerName" db:"customer_name"`
	Phone          string        `json:"phone" db:"phone"`
	Address        string        `json:"address" db:"address"`
	Lat            *float64      `json:"lat,omitempty" db:"lat"`
	Lng            *float64      `json:"lng,omitempty" db:"lng"`
	Landmark       string        `json:"landmark,omitempty" db:"landmark"`
	Notes          string        `json:"notes,omitempty" db:"notes"`
	SubtotalPhp    float64       `json:"subtotalPhp" db:"subtotal_php"`
	DiscountPhp    float64       `json:"discountPhp" db:"discount_php"`
	DeliveryFeePhp float64       `json:"deliveryFeePhp" db:"delivery_fee_php"`
	TipPhp         float64       `json:"tipPhp" db:"tip_php"`
	PriorityFeePhp float64       `json:"priorityFeePhp" db:"priority_fee_php"`
	TotalPhp       float64       `json:"totalPhp" db:"total_php"`
	PromoCode      *string       `json:"promoCode,omitempty" db:"promo_code"`
	Status         Status        `json:"status" db:"status"`
	PaymentMethod  PaymentMethod `json:"paymentMethod" db:"payment_method"`
	PaymentStatus  PaymentStatus `json:"paymentStatus" db:"payment_status"`
	PaymentNote    string        `json:"paymentNote,omitempty" db:"payment_note"`
	Scheduled      *time.Time    `json:"scheduledFor,omitempty" db:"scheduled_for"`
	CancelCutoff   *time.Time    `json:"cancelCutoff,omitempty" db:"cancel_cutoff"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" db:"updated_at"`
}

// OrderItem represents a line item in an order. Immutable once the order exists.
type OrderItem struct {
	ID             uuid.UUID `json:"-" db:"id"`
	OrderID        uuid.UUID `json:"-" db:"order_id"`
	RestaurantSlug string    `json:"restaurantSlug" db:"restaurant_slug"`
	RestaurantName string    `json:"restaurantName" db:"restaurant_name"`
	ItemName       string    `json:"itemName" db:"item_name"`
	UnitPricePhp   float64   `json:"unitPricePhp" db:"unit_price_php"`
	Quantity       int       `json:"quantity" db:"quantity"`
}

// CheckoutItem is a single line in a checkout request.
type CheckoutItem struct {
	RestaurantSlug string  `json:"restaurantSlug"`
	RestaurantName string  `json:"restaurantName"`
	ItemName       string  `json:"itemName"`
	UnitPricePhp   float64 `json:"unitPricePhp"`
	Quantity       int     `json:"quantity"`
}

// CheckoutRequest is the payload for creating an order.
type CheckoutRequest struct {
	CustomerName  string         `json:"customerName"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	Lat           *float64       `json:"lat,omitempty"`
	Lng           *float64       `json:"lng,omitempty"`
	Landmark      string         `json:"landmark,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Items         []CheckoutItem `json:"items"`
	PromoCode     *string        `json:"promoCode,omitempty"`
	TipPhp        float64        `json:"tipPhp"`
	Priority      bool           `json:"priority"`
	PaymentMethod PaymentMethod  `json:"paymentMethod"`
	ScheduledFor  *time.Time     `json:"scheduledFor,omitempty"`
}

// ETAView is the customer-facing delivery estimate.
type ETAView struct {
	MinMinutes int `json:"minMinutes"`
	MaxMinutes int `json:"maxMinutes"`
}

// OrderResponse is the full order view returned after checkout and on lookup.
type OrderResponse struct {
	Order Order       `json:"order"`
	Items []OrderItem `json:"items"`
	ETA   *ETAView    `json:"eta,omitempty"`
}

// CancelRequest is the guest self-service cancellation payload.
type CancelRequest struct {
	OrderID string `json:"orderId"`
	Phone   string `json:"phone"`
}

// CancelResponse acknowledges a cancellation.
type CancelResponse struct {
	OK     bool   `json:"ok"`
	Status Status `json:"status"`
}

// LookupRequest is the guest order-history payload.
type LookupRequest struct {
	Phone string `json:"phone"`
}

// ReviewRequest is the payload for submitting an order review.
type ReviewRequest struct {
	Phone   string `json:"phone"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// Review is a customer review tied to an order, guarded by phone-tail match.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"orderId" db:"order_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment,omitempty" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
