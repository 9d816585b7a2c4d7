// Package crypto implements one-way password hashing for stored
// credentials.
package crypto

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher produces and checks salted, adaptive password digests.
//
// Implementations must be safe for concurrent use.
type PasswordHasher interface {
	// Hash returns a digest of password that embeds a fresh random salt, so
	// hashing the same password twice yields different digests.
	Hash(ctx context.Context, password string) (string, error)

	// Verify reports whether password matches digest. The comparison runs in
	// constant time. A malformed digest yields false and a nil error; an
	// error is returned only when the check could not be run at all.
	Verify(ctx context.Context, password, digest string) (bool, error)
}
