package store

import (
	"context"

	"github.com/MKhiriev/strobe/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists principals and their favorite movie lists.
//
// Every lookup returns [ErrNoUserWasFound] (possibly wrapped) when no
// matching record exists. Any other error means the store itself failed.
type UserRepository interface {
	// CreateUser inserts user. The caller assigns UserID and PasswordHash.
	// Returns [ErrLoginAlreadyExists] if the username is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername looks a user up by exact, case-sensitive username.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindUserByID looks a user up by its identifier.
	FindUserByID(ctx context.Context, userID string) (models.User, error)

	// ListUsers returns every user ordered by username.
	ListUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser applies the non-nil fields of update and returns the
	// resulting record.
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)

	// DeleteUser removes the user with the given username together with
	// its favorites.
	DeleteUser(ctx context.Context, username string) error

	// AddFavoriteMovie appends movieID to the user's favorites. Adding a
	// movie that is already a favorite is a no-op.
	AddFavoriteMovie(ctx context.Context, userID, movieID string) error

	// RemoveFavoriteMovie removes movieID from the user's favorites.
	// Removing a movie that is not a favorite is a no-op.
	RemoveFavoriteMovie(ctx context.Context, userID, movieID string) error
}

// MovieRepository gives read access to the movie catalog.
type MovieRepository interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	FindMovieByTitle(ctx context.Context, title string) (models.Movie, error)
	FindMovieByID(ctx context.Context, movieID string) (models.Movie, error)
}

// ErrorClassificator maps driver errors to storage-level decisions.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification

	// IsUniqueViolation reports whether err was caused by a unique
	// constraint.
	IsUniqueViolation(err error) bool
}
