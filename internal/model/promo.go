package model

import "time"

// DiscountType distinguishes percent promos from flat-amount promos.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFlat    DiscountType = "flat"
)

// PromoCode is a discount code. Codes are stored uppercase and matched
// case-insensitively. Read-only from the order flow's perspective.
type PromoCode struct {
	Code           string       `json:"code" db:"code"`
	Type           DiscountType `json:"type" db:"discount_type"`
	Value          float64      `json:"value" db:"discount_value"`
	MinSubtotalPhp float64      `json:"minSubtotalPhp" db:"min_subtotal_php"`
	UsageCap       int          `json:"usageCap" db:"usage_cap"`
	UsageCount     int          `json:"usageCount" db:"usage_count"`
	ValidFrom      time.Time    `json:"validFrom" db:"valid_from"`
	ValidUntil     time.Time    `json:"validUntil" db:"valid_until"`
}

// PromoValidateRequest is the promo validation payload.
type PromoValidateRequest struct {
	Code        string  `json:"code"`
	SubtotalPhp float64 `json:"subtotalPhp"`
}

// PromoValidateResponse reports whether a code applies and the peso discount.
type PromoValidateResponse struct {
	Valid       bool    `json:"valid"`
	DiscountPhp float64 `json:"discountPhp"`
	Code        string  `json:"code,omitempty"`
	Error       string  `json:"error,omitempty"`
}
