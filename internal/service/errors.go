package service

import "errors"

var (
	// ErrValidation wraps request errors the caller can fix; handlers map it
	// to a 400.
	ErrValidation = errors.New("validation failed")

	ErrNotFound         = errors.New("not found")
	ErrEmptyCart        = errors.New("items must be a non-empty array")
	ErrNotTrashed       = errors.New("order must be trashed before deletion")
	ErrNoOrders         = errors.New("no orders found for this email")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrStoreUnreachable = errors.New("store unreachable")
	ErrBadCredentials   = errors.New("invalid credentials")
)
