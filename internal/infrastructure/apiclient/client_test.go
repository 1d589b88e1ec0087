package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wellness-admin/internal/application/ports"
	"github.com/jhoicas/wellness-admin/internal/domain"
	"github.com/jhoicas/wellness-admin/internal/infrastructure/apiclient"
	"github.com/jhoicas/wellness-admin/pkg/metrics"
)

func newClient(t *testing.T, h http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return apiclient.New(apiclient.Config{
		BaseURL:      srv.URL + "/",
		Timeout:      2 * time.Second,
		RetryMax:     3,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}, zerolog.Nop(), metrics.New("test"))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestDo_ReenviaTokenYDecodificaSobre(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get(apiclient.HeaderRequestID))
		assert.Equal(t, "/admin/programs", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeJSON(w, 200, `{"status":"success","data":[{"id":1}],"meta":{"pagination":{"current_page":2,"last_page":3,"per_page":10,"total":25}}}`)
	})

	ctx := ports.WithAccessToken(context.Background(), "tok-123")
	env, err := c.Do(ctx, ports.UpstreamRequest{Method: http.MethodGet, Path: "/admin/programs", Query: url.Values{"page": {"2"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(env.Data))
	require.NotNil(t, env.Meta)
	assert.Equal(t, 3, env.Meta.Pagination.LastPage)
}

func TestDo_SinTokenNoEnviaAuthorization(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, 200, `{"status":"success","data":null}`)
	})
	_, err := c.Do(context.Background(), ports.UpstreamRequest{Method: http.MethodGet, Path: "/public/programs"})
	require.NoError(t, err)
}

func TestDo_EnviaBodyJSON(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var got map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Gramo", got["name"])
		writeJSON(w, 201, `{"status":"success","message":"Creado","data":{"id":5}}`)
	})
	env, err := c.Do(context.Background(), ports.UpstreamRequest{
		Method: http.MethodPost, Path: "/admin/units", Body: map[string]string{"name": "Gramo"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Creado", env.Message)
}

func TestDo_Reintenta5xxHastaTresVeces(t *testing.T) {
	var hits int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, 503, `{"status":"error","message":"mantenimiento"}`)
	})

	_, err := c.Do(context.Background(), ports.UpstreamRequest{Method: http.MethodGet, Path: "/admin/programs"})
	require.Error(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&hits), "1 intento + 3 reintentos")

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, domain.KindServer, apiErr.Kind)
	assert.Equal(t, "mantenimiento", apiErr.Message)
}

func TestDo_EscriturasNoSeReintentan(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		var hits int32
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			writeJSON(w, 503, `{"status":"error","message":"mantenimiento"}`)
		})
		_, err := c.Do(context.Background(), ports.UpstreamRequest{
			Method: method, Path: "/admin/units", Body: map[string]string{"name": "Gramo"},
		})
		assert.ErrorIs(t, err, domain.ErrUpstream, method)
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "%s llega una sola vez", method)
	}
}

func TestDo_EscrituraConFalloDeTransporteNoSeReintenta(t *testing.T) {
	var hits int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		hj, ok := w.(http.Hijacker)
		if !assert.True(t, ok) {
			return
		}
		if conn, _, err := hj.Hijack(); assert.NoError(t, err) {
			_ = conn.Close()
		}
	})
	_, err := c.Do(context.Background(), ports.UpstreamRequest{Method: http.MethodPost, Path: "/auth/login", Body: map[string]string{}})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestDo_RecuperaTrasFalloTransitorio(t *testing.T) {
	var hits int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			writeJSON(w, 502, `bad gateway`)
			return
		}
		writeJSON(w, 200, `{"status":"success","data":{"ok":true}}`)
	})

	env, err := c.Do(context.Background(), ports.UpstreamRequest{Method: http.MethodGet, Path: "/auth/me"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(env.Data))
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestDo_NoReintenta4xx(t *testing.T) {
	for _, status := range []int{400, 401, 403, 404, 419, 422, 429} {
		var hits int32
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			writeJSON(w, status, `{"status":"error","message":"no"}`)
		})
		_, err := c.Do(context.Background(), ports.UpstreamRequest{Method: http.MethodGet, Path: "/admin/users"})
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "status %d", status)
	}
}

func TestDo_ClasificaErrores(t *testing.T) {
	cases := []struct {
		status int
		target error
	}{
		{401, domain.ErrUnauthorized},
		{419, domain.ErrUnauthorized},
		{403, domain.ErrForbidden},
		{404, domain.ErrNotFound},
		{422, domain.ErrValidation},
	}
	for _, tc := range cases {
		c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, tc.status, `{"status":"error","message":"x"}`)
		})
		_, err := c.Do(context.Background(), ports.UpstreamRequest{Method: http.MethodGet, Path: "/admin/roles"})
		assert.ErrorIs(t, err, tc.target, "status %d", tc.status)
	}
}

func TestDo_422ConErroresPorCampo(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 422, `{"status":"error","message":"Datos inválidos","errors":{"email":["ya está en uso"],"name":["es obligatorio"]}}`)
	})
	_, err := c.Do(context.Background(), ports.UpstreamRequest{Method: http.MethodPost, Path: "/admin/users", Body: map[string]string{}})

	fields := domain.FieldErrors(err)
	assert.Equal(t, []string{"ya está en uso"}, fields["email"])
	assert.Equal(t, []string{"es obligatorio"}, fields["name"])
}

func TestDo_ErrorNoJSON(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		_, _ = io.WriteString(w, "<html>not found</html>")
	})
	_, err := c.Do(context.Background(), ports.UpstreamRequest{Method: http.MethodGet, Path: "/admin/x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDo_SobreErrorCon200(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, `{"status":"error","message":"falló"}`)
	})
	_, err := c.Do(context.Background(), ports.UpstreamRequest{Method: http.MethodGet, Path: "/admin/x"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDo_SinContenido(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	env, err := c.Do(context.Background(), ports.UpstreamRequest{Method: http.MethodDelete, Path: "/admin/units/1"})
	require.NoError(t, err)
	assert.Equal(t, "success", env.Status)
}

func TestDo_ContextoCancelado(t *testing.T) {
	var hits int32
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		writeJSON(w, 500, `{}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Do(ctx, ports.UpstreamRequest{Method: http.MethodGet, Path: "/admin/x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, atomic.LoadInt32(&hits), int32(1))
}
