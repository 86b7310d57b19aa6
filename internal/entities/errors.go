package entities

import "errors"

// Error kinds shared by repositories, guards and services.
// The HTTP layer maps each kind to exactly one status code.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrNotModified     = errors.New("not modified")
	ErrUnprocessable   = errors.New("unprocessable input")
)
