package services

import (
	"errors"

	"foodcourt/internal/repositories"
)

// Sentinel errors forming the error taxonomy. Handlers map them to HTTP
// status codes with errors.Is; anything unmatched is a storage error and
// surfaces as 500 with its message passed through verbatim.
var (
	// ErrNotFound maps to 404.
	ErrNotFound = repositories.ErrNotFound

	// ErrInvalidInput maps to 400. It is wrapped with the offending value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials maps to 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWrongPassword maps to 401 on password change.
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrEmailExists maps to 409.
	ErrEmailExists = errors.New("email already exists")

	// ErrLastAdmin maps to 400: the final admin account cannot be removed.
	ErrLastAdmin = errors.New("cannot delete the last admin user")
)
