package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no cached access token exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrCorruptValue indicates that a stored value could not be decoded
	ErrCorruptValue = errors.New("stored value is corrupt")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
