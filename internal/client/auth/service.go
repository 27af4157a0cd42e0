package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/simplenote/simplenote-cli/internal/client/api"
	"github.com/simplenote/simplenote-cli/internal/client/state"
	"github.com/simplenote/simplenote-cli/internal/validation"
	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

// LoginResult содержит результат успешного входа
type LoginResult struct {
	User pkgapi.UserInfo
	Pair TokenPair
}

// Service предоставляет операции аутентификации поверх API клиента
// Каждая операция имеет собственную observable ячейку статуса, поэтому
// параллельные потоки (login и register на разных экранах) не мешают
// друг другу.
type Service struct {
	apiClient api.ClientAPI
	store     *Store
	logger    *slog.Logger

	loginState          *state.Cell[LoginResult]
	registerState       *state.Cell[pkgapi.RegisterResponse]
	changePasswordState *state.Cell[string]
	userInfoState       *state.Cell[pkgapi.UserInfo]
}

// NewService создает новый сервис аутентификации
func NewService(apiClient api.ClientAPI, store *Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		apiClient:           apiClient,
		store:               store,
		logger:              logger,
		loginState:          state.NewCell[LoginResult](),
		registerState:       state.NewCell[pkgapi.RegisterResponse](),
		changePasswordState: state.NewCell[string](),
		userInfoState:       state.NewCell[pkgapi.UserInfo](),
	}
}

// LoginState возвращает observable статус операции Login
func (s *Service) LoginState() *state.Cell[LoginResult] { return s.loginState }

// RegisterState возвращает observable статус операции Register
func (s *Service) RegisterState() *state.Cell[pkgapi.RegisterResponse] { return s.registerState }

// ChangePasswordState возвращает observable статус операции ChangePassword
func (s *Service) ChangePasswordState() *state.Cell[string] { return s.changePasswordState }

// UserInfoState возвращает observable статус операции UserInfo
func (s *Service) UserInfoState() *state.Cell[pkgapi.UserInfo] { return s.userInfoState }

// Login выполняет аутентификацию пользователя
// Обе части токена пишутся в Store сразу после выдачи, затем профиль
// запрашивается уже с новым access токеном.
func (s *Service) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	if err := validation.ValidateIdentifier(identifier); err != nil {
		s.loginState.SetError(err.Error())
		return nil, fmt.Errorf("invalid identifier: %w", err)
	}
	if password == "" {
		err := fmt.Errorf("password is required")
		s.loginState.SetError(err.Error())
		return nil, err
	}

	s.loginState.SetLoading()

	pair, err := s.apiClient.ObtainToken(ctx, pkgapi.TokenObtainRequest{
		Username: identifier,
		Password: password,
	})
	if err != nil {
		s.loginState.SetError(errorMessage(err))
		return nil, fmt.Errorf("login failed: %w", err)
	}

	tokens := TokenPair{Access: pair.Access, Refresh: pair.Refresh}
	if err := s.store.Set(ctx, tokens); err != nil {
		s.loginState.SetError(errorMessage(err))
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	// Профиль запрашивается с только что выданным access токеном
	user, err := s.apiClient.UserInfo(ctx)
	if err != nil {
		s.loginState.SetError(errorMessage(err))
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}

	result := &LoginResult{Pair: tokens, User: *user}
	s.loginState.SetSuccess(*result)
	s.logger.Info("login successful", "username", user.Username)

	return result, nil
}

// Register регистрирует нового пользователя
// Store не изменяется: после регистрации требуется отдельный Login.
func (s *Service) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
	if err := validation.ValidateUsername(req.Username); err != nil {
		s.registerState.SetError(err.Error())
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		s.registerState.SetError(err.Error())
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		s.registerState.SetError(err.Error())
		return nil, fmt.Errorf("invalid email: %w", err)
	}

	s.registerState.SetLoading()

	resp, err := s.apiClient.Register(ctx, req)
	if err != nil {
		s.registerState.SetError(errorMessage(err))
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	s.registerState.SetSuccess(*resp)
	s.logger.Info("registration successful", "username", resp.Username)

	return resp, nil
}

// ChangePassword меняет пароль текущего пользователя
// Требует действующей сессии (access token в Store).
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) (string, error) {
	if s.store.Get().Empty() {
		err := fmt.Errorf("not authenticated")
		s.changePasswordState.SetError(err.Error())
		return "", err
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		s.changePasswordState.SetError(err.Error())
		return "", fmt.Errorf("invalid new password: %w", err)
	}

	s.changePasswordState.SetLoading()

	msg, err := s.apiClient.ChangePassword(ctx, pkgapi.ChangePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		s.changePasswordState.SetError(errorMessage(err))
		return "", fmt.Errorf("change password failed: %w", err)
	}

	s.changePasswordState.SetSuccess(msg.Detail)
	return msg.Detail, nil
}

// UserInfo возвращает профиль текущего пользователя
func (s *Service) UserInfo(ctx context.Context) (*pkgapi.UserInfo, error) {
	s.userInfoState.SetLoading()

	user, err := s.apiClient.UserInfo(ctx)
	if err != nil {
		s.userInfoState.SetError(errorMessage(err))
		return nil, fmt.Errorf("userinfo failed: %w", err)
	}

	s.userInfoState.SetSuccess(*user)
	return user, nil
}

// Logout завершает сессию
// Идемпотентен и никогда не возвращает ошибку: серверного revoke нет,
// поэтому ошибки очистки только логируются.
func (s *Service) Logout(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear session on logout", "error", err)
	}

	s.loginState.Reset()
	s.registerState.Reset()
	s.changePasswordState.Reset()
	s.userInfoState.Reset()
}

// Tokens возвращает снимок текущей пары токенов
func (s *Service) Tokens() TokenPair {
	return s.store.Get()
}

// IsAuthenticated reports whether a usable session exists.
// Сессия пригодна, если есть refresh token и его exp claim ещё не истёк.
func (s *Service) IsAuthenticated() bool {
	refresh := s.store.Refresh()
	if refresh == "" {
		return false
	}
	return !TokenExpired(refresh)
}

// errorMessage превращает ошибку в текст для Error-состояния
func errorMessage(err error) string {
	return api.ErrorMessage(err)
}
