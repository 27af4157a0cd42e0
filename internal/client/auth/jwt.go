package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry извлекает время истечения из JWT без проверки подписи
// Клиент не знает серверного секрета, поэтому подпись не проверяется —
// exp claim используется только для отображения статуса и ранней
// диагностики заведомо истёкшей сессии.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}

	return exp.Time, nil
}

// TokenExpired reports whether the token's exp claim is in the past.
// Токены без читаемого exp считаются действующими: решающее слово
// всё равно остаётся за сервером.
func TokenExpired(token string) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return false
	}
	return time.Now().After(exp)
}
