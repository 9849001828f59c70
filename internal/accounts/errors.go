package accounts

import "errors"

var (
	// ErrDuplicateUser is returned when registering a username that is
	// already taken.
	ErrDuplicateUser = errors.New("username already exists")

	// ErrNotFound is returned when no account matches the username.
	ErrNotFound = errors.New("no such user")

	// ErrInvalidColumn is returned for a field outside the allow-list.
	// This is a programmer error, not user input.
	ErrInvalidColumn = errors.New("column not allowed")
)
