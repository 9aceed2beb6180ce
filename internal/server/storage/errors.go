package storage

import "errors"

// Common storage errors
var (
	// ErrAccountNotFound indicates that account was not found in storage
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists indicates that account with this username already exists
	ErrAccountExists = errors.New("account already exists")

	// ErrFileNotFound indicates that file was not found or belongs to another account
	ErrFileNotFound = errors.New("file not found")
)
