package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// Verificar en tiempo de compilación que SessionStorage implementa fiber.Storage.
var _ fiber.Storage = (*SessionStorage)(nil)

// Querier lo que el almacén necesita de un pool pgx (*pgxpool.Pool lo cumple).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	sessionTable = "admin_sessions"

	createSessionsSQL = `CREATE TABLE IF NOT EXISTS ` + sessionTable + ` (
		k VARCHAR(128) PRIMARY KEY,
		v BYTEA NOT NULL,
		e BIGINT NOT NULL DEFAULT 0
	)`
	getSessionSQL    = `SELECT v, e FROM ` + sessionTable + ` WHERE k = $1`
	upsertSessionSQL = `INSERT INTO ` + sessionTable + ` (k, v, e) VALUES ($1, $2, $3)
		ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v, e = EXCLUDED.e`
	deleteSessionSQL  = `DELETE FROM ` + sessionTable + ` WHERE k = $1`
	resetSessionsSQL  = `DELETE FROM ` + sessionTable
	expireSessionsSQL = `DELETE FROM ` + sessionTable + ` WHERE e <> 0 AND e <= $1`
)

// SessionStorage almacén de sesiones de fiber sobre PostgreSQL, para que varias
// instancias del BFF compartan la sesión (y por tanto el token) de cada usuario.
// e = expiración en epoch segundos; 0 = sin expiración.
type SessionStorage struct {
	db      Querier
	timeout time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewSessionStorage crea la tabla si no existe.
func NewSessionStorage(ctx context.Context, db Querier, log zerolog.Logger) (*SessionStorage, error) {
	s := &SessionStorage{db: db, timeout: 5 * time.Second, now: time.Now, log: log}
	if _, err := db.Exec(ctx, createSessionsSQL); err != nil {
		return nil, fmt.Errorf("sesiones: crear tabla: %w", err)
	}
	return s, nil
}

func (s *SessionStorage) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Get devuelve nil, nil si la clave no existe o expiró.
func (s *SessionStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := s.ctx()
	defer cancel()

	var (
		val []byte
		exp int64
	)
	err := s.db.QueryRow(ctx, getSessionSQL, key).Scan(&val, &exp)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sesiones: get: %w", err)
	}
	if exp != 0 && exp <= s.now().Unix() {
		return nil, nil
	}
	return val, nil
}

// Set guarda val; exp 0 = sin expiración.
func (s *SessionStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	var expiresAt int64
	if exp > 0 {
		expiresAt = s.now().Add(exp).Unix()
	}
	ctx, cancel := s.ctx()
	defer cancel()
	if _, err := s.db.Exec(ctx, upsertSessionSQL, key, val, expiresAt); err != nil {
		return fmt.Errorf("sesiones: set: %w", err)
	}
	return nil
}

func (s *SessionStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := s.ctx()
	defer cancel()
	if _, err := s.db.Exec(ctx, deleteSessionSQL, key); err != nil {
		return fmt.Errorf("sesiones: delete: %w", err)
	}
	return nil
}

func (s *SessionStorage) Reset() error {
	ctx, cancel := s.ctx()
	defer cancel()
	if _, err := s.db.Exec(ctx, resetSessionsSQL); err != nil {
		return fmt.Errorf("sesiones: reset: %w", err)
	}
	return nil
}

// Close no cierra el pool: su ciclo de vida es de main.
func (s *SessionStorage) Close() error { return nil }

// DeleteExpired borra las sesiones expiradas y devuelve cuántas.
func (s *SessionStorage) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, expireSessionsSQL, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("sesiones: gc: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RunGC ejecuta DeleteExpired cada every hasta que ctx se cancele.
func (s *SessionStorage) RunGC(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.DeleteExpired(ctx)
			if err != nil {
				s.log.Warn().Err(err).Msg("gc de sesiones fallido")
				continue
			}
			if n > 0 {
				s.log.Debug().Int64("deleted", n).Msg("sesiones expiradas eliminadas")
			}
		}
	}
}
