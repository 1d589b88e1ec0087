package dto

import (
	"encoding/json"
	"time"
)

// LoginRequest credenciales del formulario de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpstreamLogin data de POST /auth/login en la API. La expiración puede venir
// como instante absoluto, como segundos relativos, o solo dentro del JWT.
type UpstreamLogin struct {
	Token       string          `json:"token"`
	AccessToken string          `json:"access_token"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	ExpiresIn   int64           `json:"expires_in,omitempty"`
	User        json.RawMessage `json:"user,omitempty"`
}

// BearerToken token efectivo (token o access_token).
func (u UpstreamLogin) BearerToken() string {
	if u.Token != "" {
		return u.Token
	}
	return u.AccessToken
}

// StoredToken token guardado en la sesión del servidor. ExpiresAt en epoch ms.
type StoredToken struct {
	Token     string `json:"-"`
	ExpiresAt int64  `json:"expires_at"`
	Valid     bool   `json:"valid"`
}

// LoginResponse respuesta del BFF al login (el token viaja solo en cookies).
type LoginResponse struct {
	User      json.RawMessage `json:"user,omitempty"`
	ExpiresAt int64           `json:"expires_at"`
}
