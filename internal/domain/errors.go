package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, check-out before check-in).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write would violate a uniqueness rule,
// such as a second campground with the same name.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller is authenticated but is not
// allowed to touch the resource (e.g. another user's booking).
var ErrForbidden = errors.New("forbidden")

// Promotion rule failures. Each one maps to its own user-facing message.
var (
	ErrPromotionExpired      = errors.New("promotion expired")
	ErrPromotionLimitReached = errors.New("promotion usage limit reached")
	ErrBelowMinimumSpend     = errors.New("cart total below minimum spend")
)

// MinimumSpendError carries the minimum spend a promotion requires so the
// caller can show it. It matches ErrBelowMinimumSpend with errors.Is.
type MinimumSpendError struct {
	Required decimal.Decimal
}

func (e *MinimumSpendError) Error() string {
	return fmt.Sprintf("%s: minimum spend is %s", ErrBelowMinimumSpend, e.Required)
}

func (e *MinimumSpendError) Is(target error) bool {
	return target == ErrBelowMinimumSpend
}
