package models

import "errors"

// Domain errors shared by repositories, services and handlers. Handlers
// translate these to HTTP status codes with errors.Is; anything that does
// not match is reported as a 500 without internal detail.
var (
	// ErrNotFound means the requested row does not exist (or is not
	// visible to the requesting user).
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique field (username, email) is already taken.
	ErrConflict = errors.New("already exists")

	// ErrInvalidCredentials is returned for both unknown-user and
	// wrong-password so login failures stay indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken means the bearer token failed validation.
	ErrInvalidToken = errors.New("invalid token")
)
