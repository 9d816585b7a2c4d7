package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/strobe/internal/crypto"
	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/store"
	"github.com/MKhiriev/strobe/internal/validators"
	"github.com/MKhiriev/strobe/models"
)

type userService struct {
	userRepository  store.UserRepository
	movieRepository store.MovieRepository
	hasher          crypto.PasswordHasher
	validator       validators.Validator

	logger *logger.Logger
}

// NewUserService constructs a UserService. hasher re-hashes passwords
// changed through UpdateUser.
func NewUserService(userRepository store.UserRepository, movieRepository store.MovieRepository, hasher crypto.PasswordHasher, logger *logger.Logger) UserService {
	return &userService{
		userRepository:  userRepository,
		movieRepository: movieRepository,
		hasher:          hasher,
		validator:       validators.NewUserValidator(),
		logger:          logger,
	}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing users failed")
		return nil, wrapStoreError("listing users failed", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, username string) (models.User, error) {
	user, err := s.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, wrapStoreError("user search by username failed", err)
	}
	return user, nil
}

// UpdateUser changes the actor's own profile. A new password is validated
// and stored as a fresh bcrypt digest.
func (s *userService) UpdateUser(ctx context.Context, actor models.LeanUser, username string, req models.UpdateUserRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := checkSelf(actor, username); err != nil {
		log.Info().Str("actor", actor.Username).Str("target", username).Msg("update of another user refused")
		return models.User{}, err
	}

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	update := models.UserUpdate{
		UserID:   actor.UserID,
		Username: req.Username,
		Email:    req.Email,
		Birthday: req.Birthday,
	}
	if req.Password != nil {
		digest, err := s.hasher.Hash(ctx, *req.Password)
		if err != nil {
			log.Err(err).Str("user_id", actor.UserID).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", err)
		}
		update.PasswordHash = &digest
	}

	user, err := s.userRepository.UpdateUser(ctx, update)
	if err != nil {
		log.Err(err).Str("user_id", actor.UserID).Msg("user update failed")
		return models.User{}, wrapStoreError("user update failed", err)
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actor models.LeanUser, username string) error {
	if err := checkSelf(actor, username); err != nil {
		return err
	}

	if err := s.userRepository.DeleteUser(ctx, username); err != nil {
		logger.FromContext(ctx).Err(err).Str("username", username).Msg("user deletion failed")
		return wrapStoreError("user deletion failed", err)
	}

	return nil
}

// AddFavoriteMovie appends an existing movie to the actor's favorites and
// returns the updated profile.
func (s *userService) AddFavoriteMovie(ctx context.Context, actor models.LeanUser, username, movieID string) (models.User, error) {
	if err := checkSelf(actor, username); err != nil {
		return models.User{}, err
	}

	if _, err := s.movieRepository.FindMovieByID(ctx, movieID); err != nil {
		return models.User{}, wrapStoreError("movie search failed", err)
	}

	if err := s.userRepository.AddFavoriteMovie(ctx, actor.UserID, movieID); err != nil {
		logger.FromContext(ctx).Err(err).Str("movie_id", movieID).Msg("adding favorite failed")
		return models.User{}, wrapStoreError("adding favorite failed", err)
	}

	return s.reload(ctx, actor.UserID)
}

// RemoveFavoriteMovie drops a movie from the actor's favorites and returns
// the updated profile.
func (s *userService) RemoveFavoriteMovie(ctx context.Context, actor models.LeanUser, username, movieID string) (models.User, error) {
	if err := checkSelf(actor, username); err != nil {
		return models.User{}, err
	}

	if err := s.userRepository.RemoveFavoriteMovie(ctx, actor.UserID, movieID); err != nil {
		logger.FromContext(ctx).Err(err).Str("movie_id", movieID).Msg("removing favorite failed")
		return models.User{}, wrapStoreError("removing favorite failed", err)
	}

	return s.reload(ctx, actor.UserID)
}

func (s *userService) reload(ctx context.Context, userID string) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, wrapStoreError("user reload failed", err)
	}
	return user, nil
}

func checkSelf(actor models.LeanUser, username string) error {
	if actor.UserID == "" || actor.Username != username {
		return ErrPermissionDenied
	}
	return nil
}
