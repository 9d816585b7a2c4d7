// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP response
// writing, HTTP client initialization, identifier generation, and JWT token
// generation and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/strobe/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key used to store the authorized, redacted principal
// in the request context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserCtxKey, user.Lean())
var UserCtxKey = contextKey("user")

// GetUserFromContext retrieves the authorized principal from the context.
//
// Returns the principal and an ok flag:
//   - ok == true : value is found and has the correct type
//   - ok == false: value is missing or has an unexpected type
func GetUserFromContext(ctx context.Context) (models.LeanUser, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.LeanUser)
	return user, ok
}
