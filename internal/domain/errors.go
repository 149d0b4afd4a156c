package domain

import "errors"

var (
	// ErrProductNotFound is returned when no stored record exists for an id
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrStoreUnavailable is returned when the catalog store cannot be reached
	ErrStoreUnavailable = errors.New("catalog store unavailable")
)
