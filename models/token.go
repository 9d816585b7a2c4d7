package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an access token.
//
// Subject carries the username, User carries the redacted principal snapshot
// taken at issuance. The snapshot is informational only: authorization always
// re-resolves the principal by User.UserID.
type Claims struct {
	jwt.RegisteredClaims

	User LeanUser `json:"user"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set.
	Claims Claims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// UserID returns the principal identifier embedded in the token claims.
func (t *Token) UserID() string {
	return t.Claims.User.UserID
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
