// Package apiclient es el cliente compartido hacia la API REST del backend:
// sobre JSON, token Bearer, reintentos por conteo y clasificación de errores.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/jhoicas/wellness-admin/internal/application/dto"
	"github.com/jhoicas/wellness-admin/internal/application/ports"
	"github.com/jhoicas/wellness-admin/internal/domain"
	"github.com/jhoicas/wellness-admin/pkg/metrics"
)

// Verificar en tiempo de compilación que Client implementa UpstreamClient.
var _ ports.UpstreamClient = (*Client)(nil)

// maxBody tope de lectura de una respuesta (listados grandes incluidos).
const maxBody = 10 << 20

// HeaderRequestID cabecera de correlación enviada en cada petición.
const HeaderRequestID = "X-Request-ID"

// Config parámetros del cliente.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	RetryMax     int // reintentos tras el primer intento; 3 => hasta 4 peticiones
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client adaptador HTTP con reintentos sobre go-retryablehttp.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// New construye el cliente. m puede ser nil.
func New(cfg Config, log zerolog.Logger, m *metrics.Metrics) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	if cfg.RetryWaitMin > 0 {
		rc.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		rc.RetryWaitMax = cfg.RetryWaitMax
	}
	if cfg.Timeout > 0 {
		rc.HTTPClient.Timeout = cfg.Timeout
	}
	rc.Logger = leveledLogger{log: log}
	rc.CheckRetry = retryPolicy
	// Agotados los reintentos se devuelve la última respuesta tal cual para poder
	// leer el sobre de error.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		if attempt > 0 {
			m.UpstreamRetry(req.Method)
			log.Warn().Str("method", req.Method).Str("path", req.URL.Path).Int("attempt", attempt).Msg("reintentando petición upstream")
		}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    rc,
		log:     log,
		metrics: m,
	}
}

type noRetryKey struct{}

// retryable solo las lecturas se reintentan: una escritura que el upstream ya
// aplicó antes de fallar se duplicaría.
func retryable(method string) bool {
	return method == http.MethodGet || method == http.MethodHead
}

// retryPolicy reintenta errores de transporte y 5xx de lecturas; nunca un 4xx.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if noRetry, _ := ctx.Value(noRetryKey{}).(bool); noRetry {
		return false, nil
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return false, nil
	}
	if resp.StatusCode == 0 || resp.StatusCode >= 500 {
		return true, nil
	}
	return false, nil
}

// Do ejecuta la petición y decodifica el sobre. Respuestas no-2xx => *domain.APIError.
func (c *Client) Do(ctx context.Context, r ports.UpstreamRequest) (*dto.Envelope, error) {
	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body any
	if r.Body != nil {
		raw, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: serializar body: %w", err)
		}
		body = raw
	}

	if !retryable(r.Method) {
		ctx = context.WithValue(ctx, noRetryKey{}, true)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: crear request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := ports.AccessToken(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.UpstreamRequest(r.Method, 0)
		if ctx.Err() != nil {
			return nil, fmt.Errorf("apiclient: cancelado: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrUpstream, r.Method, r.Path, err)
	}
	defer resp.Body.Close()
	c.metrics.UpstreamRequest(r.Method, resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
	}

	c.log.Debug().
		Str("request_id", reqID).
		Str("method", r.Method).
		Str("path", r.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("upstream")

	return decode(resp.StatusCode, raw)
}

// decode interpreta el cuerpo según el status. Un 204 o cuerpo vacío en 2xx es un
// sobre de éxito sin data.
func decode(status int, raw []byte) (*dto.Envelope, error) {
	var env dto.Envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if status >= 300 {
				return nil, domain.NewAPIError(status, http.StatusText(status), nil)
			}
			return nil, fmt.Errorf("%w: respuesta no es JSON: %v", domain.ErrUpstream, err)
		}
	}
	if status >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(status)
		}
		return nil, domain.NewAPIError(status, msg, env.Errors)
	}
	if env.Status == dto.StatusError {
		return nil, domain.NewAPIError(http.StatusBadGateway, env.Message, env.Errors)
	}
	if env.Status == "" {
		env.Status = dto.StatusSuccess
	}
	return &env, nil
}
