package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

// TokenSource предоставляет текущие токены для аутентификации запросов
// Реализуется auth.Store; nil допустим для полностью анонимного клиента.
type TokenSource interface {
	// Access возвращает текущий access token ("" — запрос идёт без Authorization)
	Access() string

	// Refresh возвращает текущий refresh token ("" — восстановление после 401 невозможно)
	Refresh() string

	// SetAccess заменяет access token в памяти (без персистентности)
	SetAccess(token string)
}

// Client представляет HTTP клиент для взаимодействия с SimpleNote API
// Прозрачно добавляет bearer credential, выменивает access token перед
// отправкой для восстановленной сессии (пустой access при живом refresh)
// и один раз обновляет access token при ответе 401 (см. refreshAccess).
type Client struct {
	httpClient   *http.Client
	tokens       TokenSource
	logger       *slog.Logger
	baseURL      string
	refreshGroup singleflight.Group
}

// NewClient создает новый API клиент
// tokens может быть nil — тогда все запросы идут без Authorization.
func NewClient(baseURL string, tokens TokenSource, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// doRequest выполняет HTTP запрос с bearer-аутентификацией и одним
// повтором после успешного обновления access токена на 401.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	var bodyData []byte
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyData = jsonData
	}

	access := ""
	if c.tokens != nil {
		access = c.tokens.Access()

		// Восстановленная сессия держит только refresh token: access
		// выменивается до первой отправки, а не после анонимного 401.
		if access == "" {
			if refreshToken := c.tokens.Refresh(); refreshToken != "" {
				newAccess, refreshErr := c.refreshAccess(ctx, refreshToken)
				if refreshErr != nil {
					c.logger.Warn("failed to obtain access token for restored session",
						"path", path, "error", refreshErr)
				} else {
					c.tokens.SetAccess(newAccess)
					access = newAccess
				}
			}
		}
	}

	status, respBody, err := c.send(ctx, method, path, query, bodyData, access)
	if err != nil {
		return err
	}

	// 401 обрабатывается только если запрос шёл с bearer credential;
	// анонимный 401 не подлежит refresh и отдаётся как есть.
	if status == http.StatusUnauthorized && access != "" && c.tokens != nil {
		refreshToken := c.tokens.Refresh()
		if refreshToken == "" {
			c.logger.Debug("got 401 but no refresh token available", "path", path)
			return c.decodeResponse(status, respBody, result)
		}

		newAccess, refreshErr := c.refreshAccess(ctx, refreshToken)
		if refreshErr != nil {
			// Refresh отклонён — возвращаем исходный 401 без дальнейших повторов
			c.logger.Warn("token refresh failed, surfacing original 401",
				"path", path, "error", refreshErr)
			return c.decodeResponse(status, respBody, result)
		}

		c.tokens.SetAccess(newAccess)
		c.logger.Debug("access token refreshed, retrying request", "path", path)

		// Ровно один повтор исходного запроса с новым access токеном
		status, respBody, err = c.send(ctx, method, path, query, bodyData, newAccess)
		if err != nil {
			return err
		}
	}

	return c.decodeResponse(status, respBody, result)
}

// send выполняет одну попытку запроса и читает тело ответа
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body []byte, access string) (int, []byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	// Request ID для корреляции в серверных логах
	req.Header.Set("X-Request-Id", uuid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

// decodeResponse превращает статус и тело ответа в результат или ошибку
func (c *Client) decodeResponse(status int, respBody []byte, result interface{}) error {
	if status < 200 || status >= 300 {
		var errResp pkgapi.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && len(errResp.Errors) > 0 {
			return &Error{
				StatusCode: status,
				Type:       errResp.Type,
				Errors:     errResp.Errors,
			}
		}
		return &Error{StatusCode: status}
	}

	if result != nil {
		if len(respBody) == 0 {
			return fmt.Errorf("unexpected response: %w", ErrEmptyBody)
		}
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// refreshAccess обменивает refresh token на новый access token
// Одновременные обновления от нескольких упавших запросов схлопываются
// в один вызов /api/auth/token/refresh/, результат раздаётся всем ожидающим.
func (c *Client) refreshAccess(ctx context.Context, refreshToken string) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		var resp pkgapi.TokenRefresh
		req := pkgapi.TokenRefreshRequest{Refresh: refreshToken}

		jsonData, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal refresh request: %w", err)
		}

		// Запрос на refresh endpoint всегда идёт без bearer и без повторов
		status, respBody, err := c.send(ctx, "POST", "/api/auth/token/refresh/", nil, jsonData, "")
		if err != nil {
			return nil, err
		}
		if err := c.decodeResponse(status, respBody, &resp); err != nil {
			return nil, fmt.Errorf("refresh request failed: %w", err)
		}
		if resp.Access == "" {
			return nil, fmt.Errorf("refresh response: %w", ErrEmptyBody)
		}
		return resp.Access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
