package service

import (
	"errors"
	"fmt"
)

// Category errors. The HTTP layer maps these to status codes.
var (
	ErrValidation    = errors.New("validation")     // 400
	ErrNotFound      = errors.New("not found")      // 404
	ErrConflict      = errors.New("conflict")       // 409
	ErrForbidden     = errors.New("forbidden")      // 403
	ErrInvalidCoupon = errors.New("invalid coupon") // 422
	ErrIntegrity     = errors.New("integrity")      // 500
)

var (
	ErrEmptyCart = fmt.Errorf("%w: cart is empty", ErrValidation)

	ErrCouponNotFound  = fmt.Errorf("%w: %w: coupon does not exist", ErrInvalidCoupon, ErrNotFound)
	ErrCouponInactive  = fmt.Errorf("%w: coupon is not active", ErrInvalidCoupon)
	ErrCouponExpired   = fmt.Errorf("%w: coupon has expired", ErrInvalidCoupon)
	ErrCouponExhausted = fmt.Errorf("%w: coupon usage limit reached", ErrInvalidCoupon)
	ErrBelowMinimum    = fmt.Errorf("%w: subtotal below coupon minimum", ErrInvalidCoupon)

	ErrCouponUsageRace = fmt.Errorf("%w: coupon usage limit reached concurrently", ErrConflict)
)

// MissingFieldError names a required shipping field left blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrValidation }

type InsufficientStockError struct {
	ProductID uint
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrConflict }
