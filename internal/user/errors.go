package user

import "errors"

// Business failures raised by the repository and service layers. The HTTP
// handler layer matches on them with errors.Is to pick a response.
var (
	// ErrNotFound means no user record matched the requested id.
	ErrNotFound = errors.New("user not found")

	// ErrLoginExists means the login is already taken by another user.
	ErrLoginExists = errors.New("login already exists")
)
