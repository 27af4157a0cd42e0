package storage

import "errors"

// Common client storage errors
var (
	// ErrTokenNotFound indicates that no refresh token is persisted
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
