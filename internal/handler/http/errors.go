// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header does not use
	// the "Bearer <token>" form.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the "Bearer" scheme is present but the
	// token value is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")
)

// Client-facing messages.
const (
	msgAuthenticationFailed = "authentication failed"
	msgIncorrectCredentials = "Incorrect username or password"
	msgInvalidJSON          = "Invalid JSON was passed"
	msgUsernameTaken        = "Username already exists"
	msgNoSuchUser           = "No such user"
	msgUserNotFound         = "User not found"
	msgNoSuchMovie          = "No such movie"
	msgPermissionDenied     = "Permission denied"
	msgInternalError        = "Something went wrong"
)
