// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks account input before it reaches the store:
// registration bodies, profile updates and login credentials.
//
// A failed check is reported as a [ValidationErrors] value listing every
// offending field, which the HTTP layer renders as a 422 response.
package validators

import "context"

// Validator validates a value, optionally only the named fields of it.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
