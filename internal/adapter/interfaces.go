// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the Go client of the strobe REST API.
//
// [ServerAdapter] hides the HTTP details from callers: it serialises
// requests, keeps the bearer token returned by Login and maps HTTP failures
// to the sentinel errors in errors.go, so callers can use [errors.Is]
// (e.g. [ErrUnauthorized] for 401, [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/strobe/models"
)

// ServerAdapter defines communication with the strobe server.
// Implementations are safe for concurrent use.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all authenticated
	// requests.
	SetToken(token string)

	// Token returns the stored bearer token, or an empty string.
	Token() string

	// Register creates an account. It does not log in.
	Register(ctx context.Context, req models.RegisterRequest) (models.LeanUser, error)

	// Login authenticates and stores the issued token via SetToken.
	Login(ctx context.Context, creds models.Credentials) (models.LeanUser, error)

	GetUser(ctx context.Context, username string) (models.LeanUser, error)
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, title string) (models.Movie, error)

	// AddFavoriteMovie and RemoveFavoriteMovie return the updated profile.
	AddFavoriteMovie(ctx context.Context, username, movieID string) (models.LeanUser, error)
	RemoveFavoriteMovie(ctx context.Context, username, movieID string) (models.LeanUser, error)

	// ServerVersion returns the version reported by GET /api/version.
	ServerVersion(ctx context.Context) (string, error)
}
