package models

import "time"

// User represents a principal of the API: an account that can log in,
// keep a list of favorite movies and access protected resources.
//
// PasswordHash is never serialized. Anything that crosses the trust boundary
// (HTTP responses, token claims) must use the [LeanUser] view returned by
// [User.Lean].
type User struct {
	// UserID is the unique identifier of the user (UUIDv7 string).
	UserID string `json:"_id"`

	// Username is the unique, case-sensitive login of the user.
	Username string `json:"Username"`

	// PasswordHash is the bcrypt digest of the user's password.
	PasswordHash string `json:"-"`

	// Email is the contact address of the user.
	Email string `json:"Email"`

	// Birthday is the optional birth date of the user.
	Birthday *time.Time `json:"Birthday,omitempty"`

	// FavoriteMovies holds movie identifiers in the order they were added.
	FavoriteMovies []string `json:"FavoriteMovies"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"-"`
}

// LeanUser is the redacted view of [User]: every secret field is dropped.
type LeanUser struct {
	UserID         string     `json:"_id"`
	Username       string     `json:"Username"`
	Email          string     `json:"Email"`
	Birthday       *time.Time `json:"Birthday,omitempty"`
	FavoriteMovies []string   `json:"FavoriteMovies"`
}

// Lean returns the redacted view of the user.
func (u User) Lean() LeanUser {
	favorites := u.FavoriteMovies
	if favorites == nil {
		favorites = []string{}
	}

	return LeanUser{
		UserID:         u.UserID,
		Username:       u.Username,
		Email:          u.Email,
		Birthday:       u.Birthday,
		FavoriteMovies: favorites,
	}
}

// LeanUsers converts a slice of users to their redacted views.
func LeanUsers(users []User) []LeanUser {
	lean := make([]LeanUser, 0, len(users))
	for _, u := range users {
		lean = append(lean, u.Lean())
	}
	return lean
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Credentials is the username/password pair submitted at login.
// It exists only for the duration of a single request and is never stored.
type Credentials struct {
	Username string `json:"Username"`
	Password string `json:"Password"`
}

// RegisterRequest is the body of a registration request.
type RegisterRequest struct {
	Username string     `json:"Username"`
	Password string     `json:"Password"`
	Email    string     `json:"Email"`
	Birthday *time.Time `json:"Birthday,omitempty"`
}

// UpdateUserRequest describes a partial profile update.
// Only non-nil fields are applied.
type UpdateUserRequest struct {
	Username *string    `json:"Username,omitempty"`
	Password *string    `json:"Password,omitempty"`
	Email    *string    `json:"Email,omitempty"`
	Birthday *time.Time `json:"Birthday,omitempty"`
}

// UserUpdate is the storage-level form of [UpdateUserRequest]:
// the password, if any, has already been hashed.
type UserUpdate struct {
	UserID       string
	Username     *string
	PasswordHash *string
	Email        *string
	Birthday     *time.Time
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.PasswordHash == nil && u.Email == nil && u.Birthday == nil
}
