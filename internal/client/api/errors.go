package api

import (
	"errors"
	"fmt"
	"net/url"

	pkgapi "github.com/simplenote/simplenote-cli/pkg/api"
)

// ErrEmptyBody indicates a 2xx response with an unexpectedly absent payload
var ErrEmptyBody = errors.New("empty response body")

// Error представляет ошибку HTTP уровня с распарсенным серверным конвертом
// Классификация (auth/validation/server) выводится из статуса и полей.
type Error struct {
	Type       string
	Errors     []pkgapi.FieldError
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Detail())
}

// Detail возвращает detail первой ошибки конверта или generic сообщение
func (e *Error) Detail() string {
	if len(e.Errors) > 0 && e.Errors[0].Detail != "" {
		return e.Errors[0].Detail
	}
	return "request failed"
}

// IsAuthError reports whether err is a 401/403 response
// (invalid credentials, expired or rejected tokens).
func IsAuthError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
}

// IsValidationError reports whether err is a 4xx response carrying
// at least one field-level error (attr is set).
func IsValidationError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode < 400 || apiErr.StatusCode >= 500 {
		return false
	}
	for _, fe := range apiErr.Errors {
		if fe.Attr != "" {
			return true
		}
	}
	return false
}

// IsServerError reports whether err is a 5xx response
func IsServerError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode >= 500
}

// IsNetworkError reports whether err is a transport failure
// (timeout, connectivity) rather than an HTTP status from the server.
func IsNetworkError(err error) bool {
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// ErrorMessage превращает ошибку в текст для Error-состояния операции
// Для серверных ошибок берётся detail первой ошибки конверта.
func ErrorMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail()
	}
	return err.Error()
}
