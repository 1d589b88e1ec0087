package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
	"github.com/jhoicas/wellness-admin/internal/application/ports"
	"github.com/jhoicas/wellness-admin/internal/application/validation"
	"github.com/jhoicas/wellness-admin/internal/domain"
	"github.com/jhoicas/wellness-admin/pkg/jwt"
)

// Endpoints de autenticación de la API.
const (
	loginPath  = "/auth/login"
	logoutPath = "/auth/logout"
	mePath     = "/auth/me"
)

// AuthUseCase login/logout contra la API. Las contraseñas nunca se verifican aquí.
type AuthUseCase struct {
	upstream  ports.UpstreamClient
	validator *validation.Validator
	now       func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(upstream ports.UpstreamClient, validator *validation.Validator) *AuthUseCase {
	return &AuthUseCase{upstream: upstream, validator: validator, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *AuthUseCase) WithClock(now func() time.Time) *AuthUseCase {
	uc.now = now
	return uc
}

// Login valida las credenciales, las envía a la API y devuelve el token a guardar
// en sesión junto con el usuario. La expiración sale de expires_at, de expires_in
// o del claim exp del JWT, en ese orden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (dto.StoredToken, json.RawMessage, error) {
	if err := uc.validator.Struct(&in); err != nil {
		return dto.StoredToken{}, nil, err
	}
	env, err := uc.upstream.Do(ctx, ports.UpstreamRequest{Method: http.MethodPost, Path: loginPath, Body: in})
	if err != nil {
		return dto.StoredToken{}, nil, err
	}
	var data dto.UpstreamLogin
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return dto.StoredToken{}, nil, fmt.Errorf("%w: respuesta de login ilegible: %v", domain.ErrUpstream, err)
	}
	token := data.BearerToken()
	if token == "" {
		return dto.StoredToken{}, nil, fmt.Errorf("%w: login sin token", domain.ErrUpstream)
	}

	now := uc.now()
	var expires time.Time
	switch {
	case data.ExpiresAt != nil:
		expires = *data.ExpiresAt
	case data.ExpiresIn > 0:
		expires = now.Add(time.Duration(data.ExpiresIn) * time.Second)
	default:
		if expires, err = jwt.ExpiresAt(token); err != nil {
			return dto.StoredToken{}, nil, fmt.Errorf("%w: no se pudo determinar la expiración: %v", domain.ErrUpstream, err)
		}
	}
	if !expires.After(now) {
		return dto.StoredToken{}, nil, domain.NewAPIError(http.StatusUnauthorized, "El token recibido ya expiró", nil)
	}
	return dto.StoredToken{Token: token, ExpiresAt: expires.UnixMilli(), Valid: true}, data.User, nil
}

// Logout cierra la sesión en la API. Un 401 significa que ya estaba cerrada.
func (uc *AuthUseCase) Logout(ctx context.Context) error {
	if ports.AccessToken(ctx) == "" {
		return nil
	}
	_, err := uc.upstream.Do(ctx, ports.UpstreamRequest{Method: http.MethodPost, Path: logoutPath})
	if err != nil && !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}
	return nil
}

// Me usuario autenticado según la API.
func (uc *AuthUseCase) Me(ctx context.Context) (json.RawMessage, error) {
	env, err := uc.upstream.Do(ctx, ports.UpstreamRequest{Method: http.MethodGet, Path: mePath})
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}
