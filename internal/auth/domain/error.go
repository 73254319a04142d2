package domain

import "errors"

var (
	// ErrInvalidCredentials covers missing user, wrong email and wrong
	// password alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)
