package api

import (
	"context"
	"fmt"

	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

// Register регистрирует нового пользователя
// Токены не выдаются: после регистрации нужен отдельный ObtainToken.
func (c *Client) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.RegisterResponse, error) {
	var resp pkgapi.RegisterResponse
	err := c.doRequest(ctx, "POST", "/api/auth/register/", nil, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// ObtainToken выполняет аутентификацию и возвращает пару токенов
func (c *Client) ObtainToken(ctx context.Context, req pkgapi.TokenObtainRequest) (*pkgapi.TokenObtainPair, error) {
	var resp pkgapi.TokenObtainPair
	err := c.doRequest(ctx, "POST", "/api/auth/token/", nil, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	return &resp, nil
}

// UserInfo возвращает профиль текущего пользователя
func (c *Client) UserInfo(ctx context.Context) (*pkgapi.UserInfo, error) {
	var resp pkgapi.UserInfo
	err := c.doRequest(ctx, "GET", "/api/auth/userinfo/", nil, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	return &resp, nil
}

// ChangePassword меняет пароль текущего пользователя
func (c *Client) ChangePassword(ctx context.Context, req pkgapi.ChangePasswordRequest) (*pkgapi.Message, error) {
	var resp pkgapi.Message
	err := c.doRequest(ctx, "POST", "/api/auth/change-password/", nil, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("change password request failed: %w", err)
	}
	return &resp, nil
}
