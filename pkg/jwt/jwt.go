package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry el token no trae claim exp.
var ErrNoExpiry = errors.New("jwt: token sin expiración")

// Claims claims que emite la API upstream. El BFF nunca verifica la firma (no conoce el
// secreto); solo lee exp para dimensionar las cookies.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// Generate firma un token HS256. Lo usan los tests y los entornos locales con API simulada.
func Generate(secret, subject, role string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Inspect decodifica el token sin verificar la firma.
func Inspect(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: token ilegible: %w", err)
	}
	return claims, nil
}

// ExpiresAt devuelve la expiración del token (claim exp).
func ExpiresAt(tokenString string) (time.Time, error) {
	claims, err := Inspect(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}
