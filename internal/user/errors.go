package user

import "errors"

var (
	// ErrUserNotFound means the upstream source has no user with the requested ID.
	ErrUserNotFound = errors.New("user not found")
	// ErrServiceUnavailable means the upstream source could not be reached or failed.
	ErrServiceUnavailable = errors.New("service unavailable")
)
