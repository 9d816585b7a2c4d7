package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/strobe/internal/config"
	"github.com/MKhiriev/strobe/internal/crypto"
	"github.com/MKhiriev/strobe/internal/logger"
	"github.com/MKhiriev/strobe/internal/store"
	"github.com/MKhiriev/strobe/internal/utils"
	"github.com/MKhiriev/strobe/internal/validators"
	"github.com/MKhiriev/strobe/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptyTokenSignKey is returned by NewAuthService when no signing secret
// is configured.
var ErrEmptyTokenSignKey = errors.New("token sign key is empty")

// dummyPassword is hashed when the service is built. Its digest is compared
// against when a login names an unknown user, so that the response takes as
// long as a wrong-password failure from the very first request.
const dummyPassword = "strobe-timing-equalizer"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// hasher produces and checks bcrypt digests on the hashing worker pool.
	hasher crypto.PasswordHasher

	validator validators.Validator
	ids       IDGenerator

	// now is the clock used for iat/exp and for expiry checks.
	now func() time.Time

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	dummyDigest string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and PasswordHasher and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction. Construction pays for one password hash.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, cfg config.App, logger *logger.Logger) (AuthService, error) {
	if cfg.TokenSignKey == "" {
		return nil, ErrEmptyTokenSignKey
	}

	dummyDigest, err := hasher.Hash(context.Background(), dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("error preparing dummy digest: %w", err)
	}

	return newAuthService(userRepository, hasher, cfg, dummyDigest, logger), nil
}

func newAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, cfg config.App, dummyDigest string, logger *logger.Logger) *authService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		validator:      validators.NewUserValidator(),
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		dummyDigest:    dummyDigest,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// It validates req, hashes the password on the worker pool, assigns a fresh
// identifier and delegates persistence to the UserRepository.
//
// Returns the persisted user or:
//   - ErrInvalidDataProvided wrapping [validators.ValidationErrors].
//   - store.ErrLoginAlreadyExists if the username is taken.
//   - ErrStoreUnavailable for any other storage failure.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Debug().Err(err).Str("username", req.Username).Msg("invalid registration data")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	digest, err := a.hasher.Hash(ctx, req.Password)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		UserID:       a.ids.Generate(),
		Username:     req.Username,
		PasswordHash: digest,
		Email:        req.Email,
		Birthday:     req.Birthday,
		CreatedAt:    a.now().UTC(),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, wrapStoreError("user creation ended with error", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// An unknown username and a wrong password both return
// ErrInvalidCredentials, and both cost one bcrypt comparison. The plaintext
// password is never logged.
func (a *authService) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, creds); err != nil {
		log.Debug().Err(err).Msg("incomplete credentials provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	foundUser, err := a.userRepository.FindUserByUsername(ctx, creds.Username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		_, _ = a.hasher.Verify(ctx, creds.Password, a.dummyDigest)
		log.Info().Str("username", creds.Username).Msg("login failed: unknown username")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("username", creds.Username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w: %w", ErrStoreUnavailable, err)
	}

	match, err := a.hasher.Verify(ctx, creds.Password, foundUser.PasswordHash)
	if err != nil {
		log.Err(err).Str("user_id", foundUser.UserID).Msg("password verification aborted")
		return models.User{}, fmt.Errorf("password verification aborted: %w", err)
	}
	if !match {
		log.Info().Str("user_id", foundUser.UserID).Msg("login failed: wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token carries the redacted user, is signed with the configured
// tokenSignKey, carries the configured tokenIssuer as the "iss" claim and a
// fresh "jti", and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Lean(), a.ids.Generate(), a.now(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.UserID).Msg("token creation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Returns:
//   - ErrMissingToken for an empty string.
//   - ErrTokenIsExpired if the signature is valid but exp <= now.
//   - ErrInvalidToken for any other failure (signature, algorithm, issuer,
//     malformed payload, missing principal).
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	if tokenString == "" {
		return models.Token{}, ErrMissingToken
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.now)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpired, err)
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return token, nil
}

// Authorize parses tokenString and re-reads its principal from the store, so
// profile changes made after issuance are visible and deleted users are
// rejected with ErrPrincipalNotFound.
func (a *authService) Authorize(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		return models.User{}, err
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID())
	if errors.Is(err, store.ErrNoUserWasFound) {
		log.Info().Str("user_id", token.UserID()).Msg("token principal no longer exists")
		return models.User{}, ErrPrincipalNotFound
	}
	if err != nil {
		log.Err(err).Str("user_id", token.UserID()).Msg("principal lookup failed")
		return models.User{}, fmt.Errorf("principal lookup failed: %w: %w", ErrStoreUnavailable, err)
	}

	return user, nil
}

// wrapStoreError keeps the store's "not found" and "already exists"
// sentinels visible to callers and marks every other failure as
// ErrStoreUnavailable.
func wrapStoreError(msg string, err error) error {
	if errors.Is(err, store.ErrNoUserWasFound) ||
		errors.Is(err, store.ErrMovieNotFound) ||
		errors.Is(err, store.ErrLoginAlreadyExists) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrStoreUnavailable, err)
}
