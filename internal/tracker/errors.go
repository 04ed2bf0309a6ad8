package tracker

import "errors"

// State machine errors
var (
	// ErrAlreadyRunning indicates that the owner already has an open session
	ErrAlreadyRunning = errors.New("timer is already running")

	// ErrNotRunning indicates that the owner has no open session
	ErrNotRunning = errors.New("timer is not running")
)
