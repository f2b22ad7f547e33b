// Package auth выпуск и проверка JWT access-токенов (HS256)
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-WheelShopService/internal/domain"
)

// Claims полезная нагрузка access-токена
type Claims struct {
	UserID int64           `json:"uid"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет access-токены
type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
}

// NewTokenManager создает новый экземпляр TokenManager
func NewTokenManager(secret string, accessTTLMinutes int) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		accessTTL: time.Duration(accessTTLMinutes) * time.Minute,
	}
}

// Generate выпускает подписанный access-токен для пользователя
// Возвращает токен и время его истечения
func (m *TokenManager) Generate(userID int64, role domain.UserRole) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(m.accessTTL)

	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrSignToken, err)
	}

	return signed, exp, nil
}

// Parse проверяет подпись и срок действия токена, возвращает claims
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.Role.IsValid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
