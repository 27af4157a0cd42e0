package storage

import (
	"context"
)

// TokenStorage defines interface for durable session state on the client.
// Only the refresh token is ever persisted: the access token is short-lived
// and kept strictly in memory by the auth.Store layer above.
type TokenStorage interface {
	// SaveRefreshToken stores the refresh token, replacing any previous value
	SaveRefreshToken(ctx context.Context, token string) error

	// GetRefreshToken retrieves the stored refresh token
	// Returns ErrTokenNotFound if nothing is persisted (logged out state)
	GetRefreshToken(ctx context.Context) (string, error)

	// DeleteRefreshToken removes the persisted refresh token (logout)
	// Returns ErrTokenNotFound if nothing was persisted
	DeleteRefreshToken(ctx context.Context) error
}
