package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/strobe/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for user.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the username of the principal
//   - ID        (jti): tokenID, unique per issued token
//   - IssuedAt  (iat): issuedAt
//   - ExpiresAt (exp): issuedAt plus tokenDuration
//   - user           : the redacted principal snapshot
//
// Returns an error if issuer, tokenID, signKey or the user identifier is
// empty, or if tokenDuration is not positive.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("strobe", user.Lean(), uuid.NewString(), time.Now(), 7*24*time.Hour, "secret")
func GenerateJWTToken(issuer string, user models.LeanUser, tokenID string, issuedAt time.Time, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenID == "" || tokenDuration <= 0 || signKey == "" || user.UserID == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.Username,
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
		User: user,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification with HS256 and the provided sign key (any other
//     algorithm is rejected)
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim presence and check against now()
//   - Presence of the embedded principal identifier
//
// Failures wrap the jwt/v5 sentinel errors, so callers can tell an expired
// token (jwt.ErrTokenExpired) from any other failure with errors.Is.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, now func() time.Time) (models.Token, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.User.UserID == "" {
		return models.Token{}, errors.New("token carries no principal identifier")
	}

	return models.Token{Token: token, Claims: *claims, SignedString: tokenString}, nil
}
