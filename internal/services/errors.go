package services

import "errors"

// Error kinds the handlers translate into HTTP statuses.
var (
	ErrInvalidDomain      = errors.New("email must belong to the college domain")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrNotOwner           = errors.New("only the seller can modify this listing")
	ErrAlreadyRated       = errors.New("seller already rated by this reviewer")
)
