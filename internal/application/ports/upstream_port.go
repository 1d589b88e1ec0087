package ports

import (
	"context"
	"net/url"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
)

// UpstreamRequest petición a la API REST del backend.
type UpstreamRequest struct {
	Method string
	Path   string     // relativo a la base, ej. /admin/programs
	Query  url.Values // opcional
	Body   any        // se serializa a JSON si no es nil
}

// UpstreamClient puerto de salida hacia la API REST. Cualquier respuesta no-2xx
// llega como *domain.APIError; los reintentos son cosa del adaptador.
// El token de acceso viaja en el contexto (ver WithAccessToken).
type UpstreamClient interface {
	Do(ctx context.Context, req UpstreamRequest) (*dto.Envelope, error)
}

// QueryCache caché de lecturas por clave. Fetch sirve el valor si está fresco y
// si no llama a load (una sola vez por clave aunque haya llamadas concurrentes).
type QueryCache interface {
	Fetch(ctx context.Context, key string, load func(ctx context.Context) ([]byte, error)) ([]byte, error)
	// Invalidate descarta todas las entradas cuya clave empieza por prefix.
	Invalidate(ctx context.Context, prefix string) error
}
