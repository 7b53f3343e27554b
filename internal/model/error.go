package model

import (
	"errors"
	"fmt"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeMissingField    = "MISSING_FIELD"
	ErrCodeValidation      = "VALIDATION_FAILED"
	ErrCodeOrderNotFound   = "ORDER_NOT_FOUND"
	ErrCodeCancelClosed    = "CANCEL_WINDOW_CLOSED"
	ErrCodeInvalidPromo    = "INVALID_PROMO_CODE"
	ErrCodeMethodMismatch  = "PAYMENT_METHOD_MISMATCH"
	ErrCodePaymentRejected = "PAYMENT_NOT_VERIFIED"
	ErrCodeGatewayFailure  = "GATEWAY_FAILURE"
	ErrCodeUnauthorised    = "UNAUTHORIZED"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Validationf builds a request-validation failure with a formatted message.
func Validationf(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

// IsValidation reports whether err is a request-validation failure.
func IsValidation(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == ErrCodeValidation
}

// Common domain errors
var (
	// ErrOrderNotFound covers both a missing order and a phone mismatch so
	// the response does not leak whether an order ID exists.
	ErrOrderNotFound = NewDomainError(ErrCodeOrderNotFound, "Order not found")

	ErrCancelWindowClosed = NewDomainError(ErrCodeCancelClosed, "The cancellation window has closed - please contact support")
	ErrNotCancellable     = NewDomainError(ErrCodeCancelClosed, "Order can no longer be cancelled - please contact support")
	ErrPromoInvalid       = NewDomainError(ErrCodeInvalidPromo, "Promo code is not valid")
	ErrPromoExpired       = NewDomainError(ErrCodeInvalidPromo, "Promo code has expired")
	ErrPromoUsedUp        = NewDomainError(ErrCodeInvalidPromo, "Promo code has reached its usage limit")
	ErrPromoMinNotMet     = NewDomainError(ErrCodeInvalidPromo, "Order subtotal is below the promo minimum")
	ErrMethodMismatch     = NewDomainError(ErrCodeMethodMismatch, "Order is not payable under this payment method")
	ErrUnknownProvider    = NewDomainError(ErrCodeMethodMismatch, "Unknown payment provider")
	ErrPaymentRejected    = NewDomainError(ErrCodePaymentRejected, "Payment could not be verified")
	ErrConfirmWindow      = NewDomainError(ErrCodePaymentRejected, "Payment confirmation window has closed - please contact support")
	ErrUnauthorised       = NewDomainError(ErrCodeUnauthorised, "Invalid credentials")
)
