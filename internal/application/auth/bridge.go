package auth

import (
	"strconv"
	"time"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
)

// Nombres de las cookies que el navegador usa para saber si hay sesión.
const (
	CookieToken     = "access-token"
	CookieExpiresAt = "token-expires-at"
)

// Cookies instrucción para la respuesta: escribir ambas cookies con MaxAge, o borrarlas.
type Cookies struct {
	Clear     bool
	Token     string
	ExpiresAt int64 // epoch ms
	MaxAge    int   // segundos
}

// MaxAge floor((expiresAt - now)/1000); 0 si ya expiró.
func MaxAge(expiresAtMs int64, now time.Time) int {
	remaining := expiresAtMs - now.UnixMilli()
	if remaining <= 0 {
		return 0
	}
	return int(remaining / 1000)
}

// Bridge decide qué hacer con las cookies a partir del token en sesión.
// Sin token, inválido o expirado (incluido menos de 1s restante) => borrar.
func Bridge(stored dto.StoredToken, now time.Time) Cookies {
	if !stored.Valid || stored.Token == "" {
		return Cookies{Clear: true}
	}
	maxAge := MaxAge(stored.ExpiresAt, now)
	if maxAge <= 0 {
		return Cookies{Clear: true}
	}
	return Cookies{Token: stored.Token, ExpiresAt: stored.ExpiresAt, MaxAge: maxAge}
}

// FromCookies reconstruye el token a partir de las cookies de la petición.
// Valid solo si hay token y la expiración es futura.
func FromCookies(token, expiresAt string, now time.Time) dto.StoredToken {
	ms, err := strconv.ParseInt(expiresAt, 10, 64)
	if err != nil || token == "" {
		return dto.StoredToken{}
	}
	return dto.StoredToken{Token: token, ExpiresAt: ms, Valid: ms > now.UnixMilli()}
}
