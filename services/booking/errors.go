package booking

import (
	"errors"
	"fmt"
)

// Stable error codes surfaced to clients. A classified rejection is never
// flattened into a generic failure: the caller needs the precise reason to
// decide whether to re-query availability and retry.
const (
	CodeServiceNotFound      = "SERVICE_NOT_FOUND"
	CodeCatalogUnavailable   = "CATALOG_UNAVAILABLE"
	CodeSlotUnavailable      = "SLOT_UNAVAILABLE"
	CodeNoCreditsAvailable   = "NO_CREDITS_AVAILABLE"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeInvalidTimeRange     = "INVALID_TIME_RANGE"
	CodeInvalidTransition    = "INVALID_TRANSITION"
	CodeInvalidPaymentMethod = "INVALID_PAYMENT_METHOD"
)

// BookingError carries a stable code alongside a human-readable message.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewBookingError(code, msg string) error {
	return &BookingError{Code: code, Message: msg}
}

// CodeOf extracts the stable code from an error chain, or "" for
// unclassified errors.
func CodeOf(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
