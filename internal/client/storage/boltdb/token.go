package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/simplenote/simplenote-cli/internal/client/storage"
)

var refreshTokenKey = []byte("refresh_token")

// SaveRefreshToken stores the refresh token, replacing any previous value
func (s *Storage) SaveRefreshToken(ctx context.Context, token string) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if err := bucket.Put(refreshTokenKey, []byte(token)); err != nil {
			return fmt.Errorf("failed to save refresh token: %w", err)
		}

		return nil
	})
}

// GetRefreshToken retrieves the stored refresh token
func (s *Storage) GetRefreshToken(ctx context.Context) (string, error) {
	if s.closed.Load() {
		return "", storage.ErrStorageClosed
	}

	var token string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data := bucket.Get(refreshTokenKey)
		if data == nil {
			return storage.ErrTokenNotFound
		}

		token = string(data)
		return nil
	})

	if err != nil {
		return "", err
	}

	return token, nil
}

// DeleteRefreshToken removes the persisted refresh token (logout)
func (s *Storage) DeleteRefreshToken(ctx context.Context) error {
	if s.closed.Load() {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if bucket.Get(refreshTokenKey) == nil {
			return storage.ErrTokenNotFound
		}

		if err := bucket.Delete(refreshTokenKey); err != nil {
			return fmt.Errorf("failed to delete refresh token: %w", err)
		}

		return nil
	})
}

// Compile-time check that Storage implements TokenStorage
var _ storage.TokenStorage = (*Storage)(nil)
