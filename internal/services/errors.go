package services

import "errors"

var (
	// ErrInvalidInput wraps request-validation failures so handlers can map
	// them to a 400 instead of a generic server error.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden marks an authenticated caller acting on a resource they
	// do not own.
	ErrForbidden = errors.New("forbidden")
)
