package querycache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/wellness-admin/internal/infrastructure/querycache"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock() *fakeClock { return &fakeClock{t: time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newCache(clock *fakeClock) (*querycache.Cache, *querycache.MemoryStore) {
	store := querycache.NewMemoryStore(10*time.Minute, 100, clock.Now)
	return querycache.New(store, querycache.Config{FreshFor: 5 * time.Minute, Now: clock.Now}, zerolog.Nop(), nil), store
}

func counter(val string, calls *int32) func(context.Context) ([]byte, error) {
	return func(context.Context) ([]byte, error) {
		n := atomic.AddInt32(calls, 1)
		return []byte(fmt.Sprintf("%s-%d", val, n)), nil
	}
}

func TestFetch_FrescoNoRecarga(t *testing.T) {
	clock := newClock()
	c, _ := newCache(clock)
	var calls int32
	ctx := context.Background()

	v1, err := c.Fetch(ctx, "programs|1|page=1", counter("p", &calls))
	require.NoError(t, err)
	clock.Advance(4*time.Minute + 59*time.Second)
	v2, err := c.Fetch(ctx, "programs|1|page=1", counter("p", &calls))
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int32(1), calls)
}

func TestFetch_ViejoSeRecarga(t *testing.T) {
	clock := newClock()
	c, _ := newCache(clock)
	var calls int32
	ctx := context.Background()

	_, _ = c.Fetch(ctx, "k", counter("p", &calls))
	clock.Advance(5 * time.Minute)
	v, err := c.Fetch(ctx, "k", counter("p", &calls))
	require.NoError(t, err)
	assert.Equal(t, "p-2", string(v))
}

func TestFetch_RecargaFallidaDevuelveError(t *testing.T) {
	clock := newClock()
	c, _ := newCache(clock)
	ctx := context.Background()

	_, _ = c.Fetch(ctx, "k", func(context.Context) ([]byte, error) { return []byte("viejo"), nil })
	clock.Advance(6 * time.Minute)
	boom := errors.New("upstream caído")
	v, err := c.Fetch(ctx, "k", func(context.Context) ([]byte, error) { return nil, boom })

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, v, "no se sirve el valor viejo")
}

func TestFetch_ErrorNoSeCachea(t *testing.T) {
	c, _ := newCache(newClock())
	ctx := context.Background()

	_, err := c.Fetch(ctx, "k", func(context.Context) ([]byte, error) { return nil, errors.New("x") })
	require.Error(t, err)
	v, err := c.Fetch(ctx, "k", func(context.Context) ([]byte, error) { return []byte("ok"), nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", string(v))
}

func TestMemoryStore_ExpulsionPorInactividad(t *testing.T) {
	clock := newClock()
	c, store := newCache(clock)
	var calls int32
	ctx := context.Background()

	_, _ = c.Fetch(ctx, "activa", counter("a", &calls))
	_, _ = c.Fetch(ctx, "inactiva", counter("i", &calls))

	// Leer "activa" a los 6 min renueva su ventana; "inactiva" no se toca.
	clock.Advance(6 * time.Minute)
	_, ok, _ := store.Get(ctx, "activa")
	require.True(t, ok)

	clock.Advance(5 * time.Minute)
	_, ok, _ = store.Get(ctx, "inactiva")
	assert.False(t, ok, "11 min sin accesos")
	_, ok, _ = store.Get(ctx, "activa")
	assert.True(t, ok, "último acceso hace 5 min")
}

func TestMemoryStore_PurgeInactive(t *testing.T) {
	clock := newClock()
	store := querycache.NewMemoryStore(10*time.Minute, 100, clock.Now)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", querycache.Entry{Value: []byte("1")}))
	clock.Advance(8 * time.Minute)
	require.NoError(t, store.Set(ctx, "b", querycache.Entry{Value: []byte("2")}))
	clock.Advance(3 * time.Minute)

	assert.Equal(t, 1, store.PurgeInactive())
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_LRU(t *testing.T) {
	store := querycache.NewMemoryStore(time.Hour, 2, nil)
	ctx := context.Background()

	_ = store.Set(ctx, "a", querycache.Entry{})
	_ = store.Set(ctx, "b", querycache.Entry{})
	_, _, _ = store.Get(ctx, "a")
	_ = store.Set(ctx, "c", querycache.Entry{})

	_, okA, _ := store.Get(ctx, "a")
	_, okB, _ := store.Get(ctx, "b")
	assert.True(t, okA)
	assert.False(t, okB, "b era la menos usada")
}

func TestFetch_DeduplicaCargasConcurrentes(t *testing.T) {
	c, _ := newCache(newClock())
	var calls int32
	release := make(chan struct{})
	load := func(context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []byte("v"), nil
	}

	var wg sync.WaitGroup
	results := make([]string, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Fetch(context.Background(), "k", load)
			if err == nil {
				results[i] = string(v)
			}
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "v", r)
	}
}

func TestInvalidate_PorPrefijo(t *testing.T) {
	c, store := newCache(newClock())
	ctx := context.Background()
	val := func(context.Context) ([]byte, error) { return []byte("x"), nil }

	for _, k := range []string{"programs|1|page=1", "programs|2|page=1", "programs-x|1|", "lookup:programs|1"} {
		_, _ = c.Fetch(ctx, k, val)
	}
	require.NoError(t, c.Invalidate(ctx, "programs|"))

	assert.Equal(t, 2, store.Len())
	_, ok, _ := store.Get(ctx, "programs-x|1|")
	assert.True(t, ok, "el prefijo incluye el separador")
}

func TestInvalidate_DuranteCargaNoGuardaValorViejo(t *testing.T) {
	c, _ := newCache(newClock())
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan string)
	go func() {
		v, _ := c.Fetch(ctx, "units|u1|page=1", func(context.Context) ([]byte, error) {
			close(started)
			<-release
			return []byte("antes"), nil
		})
		done <- string(v)
	}()
	<-started
	require.NoError(t, c.Invalidate(ctx, "units|"))

	// Una lectura nueva no se suma a la carga invalidada.
	v, err := c.Fetch(ctx, "units|u1|page=1", func(context.Context) ([]byte, error) { return []byte("despues"), nil })
	require.NoError(t, err)
	assert.Equal(t, "despues", string(v))

	close(release)
	assert.Equal(t, "antes", <-done, "quien inició la carga recibe su resultado")

	v, err = c.Fetch(ctx, "units|u1|page=1", func(context.Context) ([]byte, error) { return []byte("recargado"), nil })
	require.NoError(t, err)
	assert.NotEqual(t, "antes", string(v))
}

func TestInvalidate_CargaEnCursoSinLecturasNuevas(t *testing.T) {
	c, _ := newCache(newClock())
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		_, _ = c.Fetch(ctx, "units|u1|", func(context.Context) ([]byte, error) {
			close(started)
			<-release
			return []byte("antes"), nil
		})
		close(done)
	}()
	<-started
	require.NoError(t, c.Invalidate(ctx, "units|"))
	close(release)
	<-done

	var calls int32
	v, err := c.Fetch(ctx, "units|u1|", counter("despues", &calls))
	require.NoError(t, err)
	assert.Equal(t, "despues-1", string(v))
	assert.Equal(t, int32(1), calls)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) (querycache.Entry, bool, error) {
	return querycache.Entry{}, false, errors.New("redis caído")
}
func (brokenStore) Set(context.Context, string, querycache.Entry) error { return errors.New("redis caído") }
func (brokenStore) DeletePrefix(context.Context, string) (int, error) {
	return 0, errors.New("redis caído")
}

func TestFetch_StoreCaidoNoRompeLaLectura(t *testing.T) {
	c := querycache.New(brokenStore{}, querycache.Config{}, zerolog.Nop(), nil)

	v, err := c.Fetch(context.Background(), "k", func(context.Context) ([]byte, error) { return []byte("ok"), nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", string(v))
	assert.Error(t, c.Invalidate(context.Background(), "k"))
}

func TestRun_TerminaAlCancelar(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	store := querycache.NewMemoryStore(time.Millisecond, 10, nil)
	_ = store.Set(context.Background(), "k", querycache.Entry{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.Run(ctx, 2*time.Millisecond, zerolog.Nop())
		close(done)
	}()

	require.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
