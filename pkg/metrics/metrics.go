package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores del BFF sobre un registry propio (no el global).
// Un *Metrics nil es válido: todos los métodos son no-op.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamRetries  *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
}

// New registra los contadores bajo el namespace indicado.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Peticiones a la API upstream por método y clase de estado",
		}, []string{"method", "status"}),
		upstreamRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_retries_total",
			Help:      "Reintentos hacia la API upstream",
		}, []string{"method"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_cache_lookups_total",
			Help:      "Consultas a la caché por resultado (fresh, stale, miss, shared)",
		}, []string{"result"}),
	}
	reg.MustRegister(m.upstreamRequests, m.upstreamRetries, m.cacheLookups)
	return m
}

// UpstreamRequest cuenta una respuesta upstream; status 0 = error de transporte.
func (m *Metrics) UpstreamRequest(method string, status int) {
	if m == nil {
		return
	}
	class := "error"
	if status > 0 {
		class = strconv.Itoa(status/100) + "xx"
	}
	m.upstreamRequests.WithLabelValues(method, class).Inc()
}

func (m *Metrics) UpstreamRetry(method string) {
	if m == nil {
		return
	}
	m.upstreamRetries.WithLabelValues(method).Inc()
}

func (m *Metrics) CacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry acceso directo (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
