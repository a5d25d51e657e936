package auth

import "errors"

var (
	// ErrAccessDenied is returned when the provider redirects back with an error.
	ErrAccessDenied = errors.New("auth: provider denied authorization")

	// ErrMissingCode is returned when the callback carries no authorization code.
	ErrMissingCode = errors.New("auth: missing authorization code")

	// ErrInvalidState is returned when the callback state does not match the
	// one issued at the start of the flow.
	ErrInvalidState = errors.New("auth: invalid state")

	// ErrTimeout is returned when the provider did not answer in time.
	ErrTimeout = errors.New("auth: provider timeout")

	// ErrNoUser is returned when the session holds no user.
	ErrNoUser = errors.New("auth: no user in session")

	// ErrInvalidUser is returned for a user without an email or a malformed
	// serialized user.
	ErrInvalidUser = errors.New("auth: invalid user")
)
