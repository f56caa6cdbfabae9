// Package common defines sentinel errors and small byte helpers shared by the
// client packages. Callers should use errors.Is to match the error values.
package common

import "errors"

var (
	// Storage-level errors.
	ErrNotFound = errors.New("not found")

	// Transport-level errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// Input errors. Validation failures wrap this value.
	ErrValidation = errors.New("validation error")

	// Generic fault used when nothing more specific is known.
	ErrInternal = errors.New("internal error")
)
