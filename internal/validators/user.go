package validators

import (
	"context"
	"net/mail"
	"unicode"

	"github.com/MKhiriev/strobe/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldUsername = "Username"
	FieldPassword = "Password"
	FieldEmail    = "Email"
)

// MaxPasswordLength is the longest password accepted, in bytes. Longer
// passwords cannot be hashed with bcrypt.
const MaxPasswordLength = 72

const (
	msgUsernameRequired     = "Username is required"
	msgUsernameAlphanumeric = "Username must be alphanumeric"
	msgPasswordRequired     = "Password is required"
	msgPasswordTooLong      = "Password must be at most 72 bytes long"
	msgEmailInvalid         = "Email is invalid"
)

// UserValidator implements [Validator] for account input: registration,
// profile updates and login credentials.
//
// Unlike a fail-fast validator it reports every failed rule at once, as a
// [ValidationErrors] value, so clients can show all problems together.
type UserValidator struct{}

// NewUserValidator constructs a new UserValidator and returns it as the
// Validator interface.
func NewUserValidator() Validator {
	return &UserValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types (value or pointer):
//   - models.RegisterRequest: every field is checked by default.
//   - models.UpdateUserRequest: only the fields present are checked.
//   - models.Credentials: username and password must be non-empty.
//
// Optional fields restrict validation to the named subset.
func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(*value, fields...)

	case models.UpdateUserRequest:
		return v.validateUpdateUserRequest(value)
	case *models.UpdateUserRequest:
		return v.validateUpdateUserRequest(*value)

	case models.Credentials:
		return v.validateCredentials(value)
	case *models.Credentials:
		return v.validateCredentials(*value)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateRegisterRequest(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldEmail}
	}

	var errs ValidationErrors
	for _, f := range fields {
		switch f {
		case FieldUsername:
			errs = append(errs, checkUsername(req.Username)...)
		case FieldPassword:
			errs = append(errs, checkPassword(req.Password)...)
		case FieldEmail:
			errs = append(errs, checkEmail(req.Email)...)
		default:
			return ErrUnknownField
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *UserValidator) validateUpdateUserRequest(req models.UpdateUserRequest) error {
	var errs ValidationErrors
	if req.Username != nil {
		errs = append(errs, checkUsername(*req.Username)...)
	}
	if req.Password != nil {
		errs = append(errs, checkPassword(*req.Password)...)
	}
	if req.Email != nil {
		errs = append(errs, checkEmail(*req.Email)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (v *UserValidator) validateCredentials(c models.Credentials) error {
	var errs ValidationErrors
	if c.Username == "" {
		errs = append(errs, FieldError{Param: FieldUsername, Msg: msgUsernameRequired})
	}
	if c.Password == "" {
		errs = append(errs, FieldError{Param: FieldPassword, Msg: msgPasswordRequired})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// checkUsername mirrors the two registration rules: required, and made of
// letters and digits only. An empty username fails both.
func checkUsername(username string) []FieldError {
	var errs []FieldError
	if username == "" {
		errs = append(errs, FieldError{Param: FieldUsername, Msg: msgUsernameRequired})
	}
	if !isAlphanumeric(username) {
		errs = append(errs, FieldError{Param: FieldUsername, Msg: msgUsernameAlphanumeric})
	}
	return errs
}

func checkPassword(password string) []FieldError {
	switch {
	case password == "":
		return []FieldError{{Param: FieldPassword, Msg: msgPasswordRequired}}
	case len(password) > MaxPasswordLength:
		return []FieldError{{Param: FieldPassword, Msg: msgPasswordTooLong}}
	}
	return nil
}

// checkEmail accepts a bare address only: "Name <a@b.c>" forms are rejected.
func checkEmail(email string) []FieldError {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return []FieldError{{Param: FieldEmail, Msg: msgEmailInvalid}}
	}
	return nil
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
