package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrEventNotFound indicates that no matching event exists
	ErrEventNotFound = errors.New("event not found")

	// ErrSessionOpen indicates that the owner's latest event is a START
	ErrSessionOpen = errors.New("session already open")

	// ErrNoOpenSession indicates that the owner has no unmatched START
	ErrNoOpenSession = errors.New("no open session")

	// ErrSettingNotFound indicates that settings key is absent
	ErrSettingNotFound = errors.New("setting not found")

	// ErrBusy indicates that the store lock wait timed out
	ErrBusy = errors.New("store is locked by another process")
)
