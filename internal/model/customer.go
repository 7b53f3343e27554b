package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a customer identified by phone and/or email.
// Created on first interaction that requires identity (referral lookup,
// signup); the referral code is generated lazily if absent.
type Customer struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name,omitempty" db:"name"`
	Phone         string    `json:"phone" db:"phone"`
	Email         string    `json:"email,omitempty" db:"email"`
	PasswordHash  *string   `json:"-" db:"password_hash"`
	LoyaltyPoints int       `json:"loyaltyPoints" db:"loyalty_points"`
	ReferralCode  *string   `json:"referralCode,omitempty" db:"referral_code"`
	GatewayRef    *string   `json:"-" db:"gateway_ref"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// Driver is a delivery rider with a portal login and a last-known position.
type Driver struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Lat          *float64  `json:"lat,omitempty" db:"lat"`
	Lng          *float64  `json:"lng,omitempty" db:"lng"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ReferralRequest asks for (and lazily creates) a customer's referral code.
type ReferralRequest struct {
	Phone string `json:"phone"`
}

// ReferralResponse carries the customer's referral code.
type ReferralResponse struct {
	Code string `json:"code"`
}

// DriverLocationRequest is the driver portal's position write.
type DriverLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
