package querycache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wellness-admin/internal/infrastructure/querycache"
)

func newRedisStore(t *testing.T) (*querycache.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return querycache.NewRedisStore(client, "wa:", 10*time.Minute), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	at := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Set(ctx, "programs|1|page=1", querycache.Entry{Value: []byte(`{"data":[]}`), FetchedAt: at}))
	assert.True(t, mr.Exists("wa:programs|1|page=1"))

	e, ok, err := store.Get(ctx, "programs|1|page=1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"data":[]}`, string(e.Value))
	assert.True(t, at.Equal(e.FetchedAt))

	_, ok, err = store.Get(ctx, "no-existe")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_LecturaRenuevaInactividad(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", querycache.Entry{Value: []byte("v")}))
	mr.FastForward(6 * time.Minute)
	_, ok, _ := store.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, 10*time.Minute, mr.TTL("wa:k"), "GETEX renueva el TTL")

	mr.FastForward(10*time.Minute + time.Second)
	_, ok, _ = store.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisStore_DeletePrefix(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	for _, k := range []string{"programs|1|a", "programs|2|b", "programs-x|1|c", "users|1|d", "w*rd|1"} {
		require.NoError(t, store.Set(ctx, k, querycache.Entry{}))
	}
	require.NoError(t, mr.Set("otra-app:programs|1|a", "x"))

	n, err := store.DeletePrefix(ctx, "programs|")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, mr.Exists("wa:programs-x|1|c"))
	assert.True(t, mr.Exists("otra-app:programs|1|a"), "no toca claves fuera del espacio")

	n, err = store.DeletePrefix(ctx, "w*")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "el * del prefijo es literal")
	assert.True(t, mr.Exists("wa:users|1|d"))
}

func TestRedisStore_ConCache(t *testing.T) {
	store, _ := newRedisStore(t)
	clock := newClock()
	c := querycache.New(store, querycache.Config{Now: clock.Now}, zerolog.Nop(), nil)
	var calls int32

	_, err := c.Fetch(context.Background(), "k", counter("r", &calls))
	require.NoError(t, err)
	v, err := c.Fetch(context.Background(), "k", counter("r", &calls))
	require.NoError(t, err)
	assert.Equal(t, "r-1", string(v))
}
