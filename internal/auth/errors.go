package auth

import "errors"

// Auth gate errors
var (
	// ErrNotAuthenticated indicates that no valid current-user session exists
	ErrNotAuthenticated = errors.New("not authenticated, please login first")

	// ErrInvalidCredentials indicates wrong username or password
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrDuplicateUsername indicates that the username is already taken
	ErrDuplicateUsername = errors.New("username is already taken")

	// ErrPasswordMismatch indicates that password confirmation differs
	ErrPasswordMismatch = errors.New("passwords do not match")
)
