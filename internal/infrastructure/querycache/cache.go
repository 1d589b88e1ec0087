package querycache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/wellness-admin/internal/application/ports"
	"github.com/jhoicas/wellness-admin/pkg/metrics"
)

var _ ports.QueryCache = (*Cache)(nil)

// Config ventanas de la caché.
type Config struct {
	FreshFor time.Duration // 5 min por defecto
	Now      func() time.Time
}

// Cache fachada sobre un Store: frescura, deduplicación de cargas concurrentes
// y métricas de aciertos.
type Cache struct {
	store    Store
	freshFor time.Duration
	now      func() time.Time
	group    singleflight.Group
	log      zerolog.Logger
	metrics  *metrics.Metrics

	mu       sync.Mutex
	inflight map[string]*flight
}

// flight carga en curso de una clave; invalidated se marca si un Invalidate
// coincide con ella mientras la carga no ha terminado.
type flight struct {
	invalidated bool
}

// New construye la caché. m puede ser nil.
func New(store Store, cfg Config, log zerolog.Logger, m *metrics.Metrics) *Cache {
	if cfg.FreshFor <= 0 {
		cfg.FreshFor = 5 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Cache{
		store:    store,
		freshFor: cfg.FreshFor,
		now:      cfg.Now,
		log:      log,
		metrics:  m,
		inflight: make(map[string]*flight),
	}
}

// Fetch devuelve el valor fresco de key o lo carga con load. Una entrada pasada de
// frescura se vuelve a cargar; si la recarga falla se devuelve el error, nunca el
// valor viejo. Un fallo del store se trata como fallo de caché, no de la lectura.
func (c *Cache) Fetch(ctx context.Context, key string, load func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	e, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("caché no disponible, se consulta la API")
	}
	result := "miss"
	if ok {
		if c.now().Sub(e.FetchedAt) < c.freshFor {
			c.metrics.CacheLookup("fresh")
			return e.Value, nil
		}
		result = "stale"
	}

	// La carga compartida no depende de la cancelación de quien la inició.
	shared := context.WithoutCancel(ctx)
	v, err, dup := c.group.Do(key, func() (any, error) {
		f := c.begin(key)
		val, err := load(shared)
		if err != nil {
			c.end(key, f)
			return nil, err
		}
		if err := c.store.Set(shared, key, Entry{Value: val, FetchedAt: c.now()}); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar en caché")
		}
		// Se comprueba después del Set: un Invalidate posterior a end ya borra la
		// entrada con su DeletePrefix.
		if c.end(key, f) {
			if err := c.store.Set(shared, key, Entry{Value: val}); err != nil {
				c.log.Warn().Err(err).Str("key", key).Msg("no se pudo marcar la entrada como vieja")
			}
		}
		return val, nil
	})
	if dup {
		result = "shared"
	}
	c.metrics.CacheLookup(result)
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *Cache) begin(key string) *flight {
	f := &flight{}
	c.mu.Lock()
	c.inflight[key] = f
	c.mu.Unlock()
	return f
}

// end retira la carga y devuelve si fue invalidada mientras corría.
func (c *Cache) end(key string, f *flight) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight[key] == f {
		delete(c.inflight, key)
	}
	return f.invalidated
}

// Invalidate descarta las entradas con el prefijo dado. Las cargas en curso que
// coinciden no se comparten con lecturas nuevas y su resultado se guarda ya viejo.
func (c *Cache) Invalidate(ctx context.Context, prefix string) error {
	c.mu.Lock()
	for key, f := range c.inflight {
		if strings.HasPrefix(key, prefix) {
			f.invalidated = true
			c.group.Forget(key)
			delete(c.inflight, key)
		}
	}
	c.mu.Unlock()

	n, err := c.store.DeletePrefix(ctx, prefix)
	if err != nil {
		return err
	}
	c.log.Debug().Str("prefix", prefix).Int("deleted", n).Msg("caché invalidada")
	return nil
}
