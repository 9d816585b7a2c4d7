package service

import (
	"context"

	"github.com/MKhiriev/strobe/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService is the authentication core: it registers principals, verifies
// credentials, issues access tokens and resolves them back to principals.
type AuthService interface {
	// RegisterUser validates req, hashes the password and stores a new
	// principal.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login verifies creds and returns the matching principal. Unknown
	// usernames and wrong passwords both yield ErrInvalidCredentials.
	Login(ctx context.Context, creds models.Credentials) (models.User, error)

	// CreateToken issues a signed access token for user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken checks the signature, issuer and expiry of tokenString.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// Authorize parses tokenString and looks its principal up again.
	Authorize(ctx context.Context, tokenString string) (models.User, error)
}

// UserService manages profiles and favorites. Mutating operations take the
// authenticated actor and only let users change their own account.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, username string) (models.User, error)
	UpdateUser(ctx context.Context, actor models.LeanUser, username string, req models.UpdateUserRequest) (models.User, error)
	DeleteUser(ctx context.Context, actor models.LeanUser, username string) error
	AddFavoriteMovie(ctx context.Context, actor models.LeanUser, username, movieID string) (models.User, error)
	RemoveFavoriteMovie(ctx context.Context, actor models.LeanUser, username, movieID string) (models.User, error)
}

// MovieService gives read access to the movie catalog.
type MovieService interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovieByTitle(ctx context.Context, title string) (models.Movie, error)
}

// AppInfoService reports build information of the running server.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// IDGenerator produces unique string identifiers.
type IDGenerator interface {
	Generate() string
}
