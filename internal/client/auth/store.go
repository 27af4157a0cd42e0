package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/simplenote/simplenote-cli/internal/client/api"
	"github.com/simplenote/simplenote-cli/internal/client/storage"
)

// TokenPair представляет текущую пару токенов сессии
// Пустой Access — запросы идут неаутентифицированными; пустой Refresh —
// восстановление после 401 невозможно.
type TokenPair struct {
	Access  string
	Refresh string
}

// Empty reports whether the pair carries no credentials at all
func (p TokenPair) Empty() bool {
	return p.Access == "" && p.Refresh == ""
}

// Store держит пару токенов в памяти и персистит refresh token
// Get/Set/Clear атомарны относительно читателей: ни один читатель не видит
// частично обновлённую пару. Access token никогда не пишется на диск.
type Store struct {
	storage storage.TokenStorage
	logger  *slog.Logger
	mu      sync.RWMutex
	pair    TokenPair
}

// Compile-time check that Store implements api.TokenSource
var _ api.TokenSource = (*Store)(nil)

// NewStore создает Store и восстанавливает персистентный refresh token
// Отсутствие сохранённого токена — нормальное состояние "logged out".
func NewStore(ctx context.Context, tokenStorage storage.TokenStorage, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		storage: tokenStorage,
		logger:  logger,
	}

	refresh, err := tokenStorage.GetRefreshToken(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}

	// Access token не персистится: сессия восстанавливается в состоянии
	// "нужен refresh", api.Client выменяет новый access перед первым запросом.
	s.pair = TokenPair{Refresh: refresh}
	logger.Debug("restored persisted session")

	return s, nil
}

// Get возвращает снимок текущей пары токенов
func (s *Store) Get() TokenPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair
}

// Set атомарно заменяет пару и персистит непустой refresh token
func (s *Store) Set(ctx context.Context, pair TokenPair) error {
	s.mu.Lock()
	s.pair = pair
	s.mu.Unlock()

	if pair.Refresh == "" {
		return nil
	}

	if err := s.storage.SaveRefreshToken(ctx, pair.Refresh); err != nil {
		return fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return nil
}

// Clear атомарно сбрасывает пару и удаляет персистентный refresh token
// Идемпотентен: повторный Clear при отсутствии данных не ошибка.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.pair = TokenPair{}
	s.mu.Unlock()

	if err := s.storage.DeleteRefreshToken(ctx); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}

// Access реализует api.TokenSource
func (s *Store) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.Access
}

// Refresh реализует api.TokenSource
func (s *Store) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair.Refresh
}

// SetAccess заменяет access token в памяти после успешного refresh
// Refresh token при этом не меняется и диск не затрагивается.
func (s *Store) SetAccess(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair.Access = token
}
