package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisClient subconjunto de go-redis que usa el store (permite inyectar clientes en tests).
type RedisClient interface {
	GetEx(ctx context.Context, key string, expiration time.Duration) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore store compartido entre instancias. La ventana de inactividad es el TTL
// de la clave, renovado en cada lectura con GETEX.
type RedisStore struct {
	client      RedisClient
	prefix      string
	inactiveFor time.Duration
}

// NewRedisStore crea el store; prefix aísla las claves del resto del Redis.
func NewRedisStore(client RedisClient, prefix string, inactiveFor time.Duration) *RedisStore {
	if inactiveFor <= 0 {
		inactiveFor = 10 * time.Minute
	}
	return &RedisStore{client: client, prefix: prefix, inactiveFor: inactiveFor}
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	raw, err := s.client.GetEx(ctx, s.prefix+key, s.inactiveFor).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("querycache.redis: get %q: %w", key, err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return Entry{}, false, fmt.Errorf("querycache.redis: entrada corrupta %q: %w", key, err)
	}
	return e, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("querycache.redis: serializar %q: %w", key, err)
	}
	if err := s.client.Set(ctx, s.prefix+key, raw, s.inactiveFor).Err(); err != nil {
		return fmt.Errorf("querycache.redis: set %q: %w", key, err)
	}
	return nil
}

// DeletePrefix recorre las claves con SCAN (nunca KEYS) y las borra por lotes.
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	match := escapeGlob(s.prefix+prefix) + "*"
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, 200).Result()
		if err != nil {
			return deleted, fmt.Errorf("querycache.redis: scan %q: %w", prefix, err)
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("querycache.redis: del %q: %w", prefix, err)
			}
			deleted += int(n)
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string { return globEscaper.Replace(s) }
