package dto

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jhoicas/wellness-admin/internal/domain"
)

// Estados del sobre de respuesta.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope sobre estándar de la API upstream: {status, message, data, meta}.
// Data queda en crudo; cada consumidor lo decodifica al tipo que espera.
type Envelope struct {
	Status  string              `json:"status"`
	Message string              `json:"message,omitempty"`
	Data    json.RawMessage     `json:"data,omitempty"`
	Meta    *Meta               `json:"meta,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Meta metadatos opcionales del sobre.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination metadatos de página tal como los envía la API.
type Pagination struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Response sobre que el BFF devuelve al navegador (mismo formato que el upstream).
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
	Meta    *Meta  `json:"meta,omitempty"`
}

// OK envuelve data en un sobre de éxito.
func OK(data any) Response {
	return Response{Status: StatusSuccess, Data: data}
}

// ErrorResponse cuerpo de error HTTP. Errors solo viene en fallos de validación.
type ErrorResponse struct {
	Status  string              `json:"status"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// ErrorFrom traduce un error de la aplicación a status HTTP + cuerpo.
// Un 419 del upstream (sesión expirada) se expone como 401.
func ErrorFrom(err error) (int, ErrorResponse) {
	resp := ErrorResponse{Status: StatusError, Message: err.Error()}
	var apiErr *domain.APIError
	switch {
	case errors.As(err, &apiErr):
		status := apiErr.Status
		if apiErr.Kind == domain.KindUnauthorized {
			status = http.StatusUnauthorized
		}
		resp.Code = string(apiErr.Kind)
		resp.Message = apiErr.Message
		resp.Errors = apiErr.Errors
		if resp.Message == "" {
			resp.Message = http.StatusText(status)
		}
		if status < 400 {
			status = http.StatusBadGateway
		}
		return status, resp
	case errors.Is(err, domain.ErrUnknownResource), errors.Is(err, domain.ErrNotFound):
		resp.Code = string(domain.KindNotFound)
		return http.StatusNotFound, resp
	case errors.Is(err, domain.ErrInvalidInput):
		resp.Code = "invalid_input"
		return http.StatusBadRequest, resp
	case errors.Is(err, domain.ErrNotCreatable):
		resp.Code = "not_allowed"
		return http.StatusMethodNotAllowed, resp
	case errors.Is(err, domain.ErrUpstream):
		resp.Code = string(domain.KindServer)
		resp.Message = "La API no está disponible"
		return http.StatusBadGateway, resp
	case errors.Is(err, domain.ErrUnauthorized):
		resp.Code = string(domain.KindUnauthorized)
		return http.StatusUnauthorized, resp
	}
	resp.Code = string(domain.KindServer)
	resp.Message = "Error interno"
	return http.StatusInternalServerError, resp
}
