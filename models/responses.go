package models

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	User  LeanUser `json:"user"`
	Token string   `json:"token"`
}

// LoginFailure is returned when a login attempt is rejected.
// User echoes the submitted username; the password is never echoed.
type LoginFailure struct {
	Message string    `json:"message"`
	User    LoginEcho `json:"user"`
}

// LoginEcho is the part of the login input echoed back on failure.
type LoginEcho struct {
	Username string `json:"Username"`
}

// MessageResponse is a generic error body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationError describes a single rejected request field.
type ValidationError struct {
	Param string `json:"param"`
	Msg   string `json:"msg"`
}

// ValidationErrorsResponse is returned when request validation fails.
type ValidationErrorsResponse struct {
	Errors []ValidationError `json:"errors"`
}
