// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/strobe/internal/workers"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the longest password bcrypt accepts, in bytes.
const MaxPasswordLength = 72

var (
	// ErrEmptyPassword is returned when attempting to hash an empty password.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordTooLong is returned for passwords over MaxPasswordLength bytes.
	ErrPasswordTooLong = fmt.Errorf("password cannot be longer than %d bytes", MaxPasswordLength)

	// ErrInvalidCost is returned by NewBcryptHasher for costs outside
	// bcrypt's accepted range.
	ErrInvalidCost = fmt.Errorf("bcrypt cost must be in [%d, %d]", bcrypt.MinCost, bcrypt.MaxCost)
)

// bcryptHasher implements [PasswordHasher] with bcrypt. Every hash and
// compare runs on runner so the number of concurrent bcrypt computations is
// bounded.
type bcryptHasher struct {
	cost   int
	runner workers.Runner
}

// NewBcryptHasher constructs a bcrypt-backed [PasswordHasher] with the given
// work factor, running every computation through runner.
func NewBcryptHasher(cost int, runner workers.Runner) (PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, ErrInvalidCost
	}

	return &bcryptHasher{
		cost:   cost,
		runner: runner,
	}, nil
}

// Hash implements [PasswordHasher]. bcrypt draws a new 16-byte salt from
// crypto/rand for every call.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}

	var (
		digest  []byte
		hashErr error
	)
	if err := h.runner.Do(ctx, func() {
		digest, hashErr = bcrypt.GenerateFromPassword([]byte(password), h.cost)
	}); err != nil {
		return "", err
	}
	if hashErr != nil {
		return "", fmt.Errorf("error hashing password: %w", hashErr)
	}

	return string(digest), nil
}

// Verify implements [PasswordHasher].
func (h *bcryptHasher) Verify(ctx context.Context, password, digest string) (bool, error) {
	var match bool
	if err := h.runner.Do(ctx, func() {
		match = bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}); err != nil {
		return false, err
	}

	return match, nil
}
