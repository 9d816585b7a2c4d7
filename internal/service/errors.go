package service

import "errors"

// Credential and token failures. The HTTP layer collapses all of them into
// one generic client-facing response; the distinction is kept for logs.
var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrMissingToken       = errors.New("no token provided")
	ErrInvalidToken       = errors.New("token is invalid")
	ErrTokenIsExpired     = errors.New("token is expired")
	ErrPrincipalNotFound  = errors.New("token principal no longer exists")

	ErrTokenCreationFailed = errors.New("token creation failed")
)

var (
	// ErrStoreUnavailable wraps any failure of the underlying store that is
	// not a plain "not found".
	ErrStoreUnavailable = errors.New("store unavailable")

	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
