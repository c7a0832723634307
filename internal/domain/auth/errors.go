package auth

import "errors"

// ErrEmailExists indicates a duplicate email address.
var ErrEmailExists = errors.New("email already exists")

// Error codes returned by the service.
const (
	CodeInvalidInput       = "invalid_input"
	CodeInvalidCredentials = "invalid_credentials"
	CodeInvalidToken       = "invalid_token"
	CodeEmailExists        = "email_exists"
	CodeMemberNotFound     = "member_not_found"
	CodeAuthError          = "auth_error"
)
