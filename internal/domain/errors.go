package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUnknownResource = errors.New("recurso desconocido")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrValidation      = errors.New("error de validación")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrUpstream        = errors.New("error en la API upstream")
	ErrNotCreatable    = errors.New("el recurso no admite altas")
)

// ErrorKind clasificación de un fallo por código HTTP.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindValidation   ErrorKind = "validation"
	KindServer       ErrorKind = "server"
	KindUnknown      ErrorKind = "unknown"
)

// ClassifyStatus 401/419 => unauthorized, 403 => forbidden, 404 => not_found,
// 422 => validation, 5xx => server; el resto unknown.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == 419:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusUnprocessableEntity:
		return KindValidation
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// APIError único contrato de error para fallos upstream y de validación local.
// Errors lleva los mensajes por campo cuando Kind == KindValidation.
type APIError struct {
	Status  int
	Kind    ErrorKind
	Message string
	Errors  map[string][]string
}

// NewAPIError construye el error clasificando el status.
func NewAPIError(status int, message string, fieldErrors map[string][]string) *APIError {
	return &APIError{
		Status:  status,
		Kind:    ClassifyStatus(status),
		Message: message,
		Errors:  fieldErrors,
	}
}

// NewValidationError error 422 con mensajes por campo.
func NewValidationError(message string, fieldErrors map[string][]string) *APIError {
	return NewAPIError(http.StatusUnprocessableEntity, message, fieldErrors)
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Kind)
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Kind, e.Message)
}

// Is permite errors.Is(err, domain.ErrUnauthorized) y similares.
func (e *APIError) Is(target error) bool {
	switch e.Kind {
	case KindUnauthorized:
		return target == ErrUnauthorized
	case KindForbidden:
		return target == ErrForbidden
	case KindNotFound:
		return target == ErrNotFound
	case KindValidation:
		return target == ErrValidation
	case KindServer:
		return target == ErrUpstream
	}
	return false
}

// FieldErrors devuelve los mensajes por campo si err es un APIError de validación.
func FieldErrors(err error) map[string][]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind == KindValidation {
		return apiErr.Errors
	}
	return nil
}
