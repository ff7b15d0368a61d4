package storage

import "errors"

// Common client storage errors
var (
	// ErrSessionNotFound indicates that no session artifact exists
	ErrSessionNotFound = errors.New("session not found")

	// ErrCorruptSession indicates that stored session data failed to parse
	ErrCorruptSession = errors.New("session data is corrupt")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
