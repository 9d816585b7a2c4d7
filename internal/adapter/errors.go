package adapter

import "errors"

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrForbidden means the acting user tried to change another user's
	// account or favorites (403 "Permission denied").
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrInternalServerError = errors.New("internal server error")

	ErrNoToken        = errors.New("no token in login response")
	ErrInvalidAddress = errors.New("invalid server address")
)
