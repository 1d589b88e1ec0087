package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del BFF (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Upstream UpstreamConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Session  SessionConfig
	DB       DBConfig
	Billing  BillingConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	DocsFile string // swagger.json servido en /docs si existe
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins string // lista separada por comas
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// UpstreamConfig API REST que consume el dashboard.
type UpstreamConfig struct {
	BaseURL  string
	Timeout  time.Duration
	RetryMax int
}

// CacheConfig ventana de frescura e inactividad de la caché de consultas.
type CacheConfig struct {
	Backend       string // memory | redis
	FreshFor      time.Duration
	InactiveFor   time.Duration
	MaxEntries    int
	RedisKeySpace string
}

// RedisConfig conexión a Redis (solo si Cache.Backend == "redis").
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig sesión del panel y cookies del puente de autenticación.
type SessionConfig struct {
	Storage      string // memory | postgres
	CookieSecure bool
	CookieDomain string
	Expiration   time.Duration
}

// BillingConfig datos del emisor impresos en las facturas PDF.
type BillingConfig struct {
	IssuerName    string
	IssuerEmail   string
	IssuerAddress string
}

// DBConfig configuración de PostgreSQL (solo para Session.Storage == "postgres").
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, UPSTREAM_BASE_URL, CACHE_BACKEND, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return FromViper(v)
}

// FromViper construye la configuración a partir de una instancia ya cargada.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "wellness-admin"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			DocsFile: getString(v, "DOCS_FILE", "./docs/swagger.json"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			CORSOrigins: getString(v, "CORS_ORIGINS", "http://localhost:3000"),
		},
		Upstream: UpstreamConfig{
			BaseURL:  strings.TrimRight(getString(v, "UPSTREAM_BASE_URL", ""), "/"),
			Timeout:  time.Duration(getInt(v, "UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
			RetryMax: getInt(v, "UPSTREAM_RETRY_MAX", 3),
		},
		Cache: CacheConfig{
			Backend:       getString(v, "CACHE_BACKEND", "memory"),
			FreshFor:      time.Duration(getInt(v, "CACHE_FRESH_SECONDS", 300)) * time.Second,
			InactiveFor:   time.Duration(getInt(v, "CACHE_INACTIVE_SECONDS", 600)) * time.Second,
			MaxEntries:    getInt(v, "CACHE_MAX_ENTRIES", 5000),
			RedisKeySpace: getString(v, "CACHE_REDIS_PREFIX", "wellness-admin:query:"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Session: SessionConfig{
			Storage:      getString(v, "SESSION_STORAGE", "memory"),
			CookieSecure: getBool(v, "COOKIE_SECURE", false),
			CookieDomain: getString(v, "COOKIE_DOMAIN", ""),
			Expiration:   time.Duration(getInt(v, "SESSION_HOURS", 24)) * time.Hour,
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "wellness_admin"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		Billing: BillingConfig{
			IssuerName:    getString(v, "INVOICE_ISSUER_NAME", "Wellness Studio"),
			IssuerEmail:   getString(v, "INVOICE_ISSUER_EMAIL", ""),
			IssuerAddress: getString(v, "INVOICE_ISSUER_ADDRESS", ""),
		},
	}

	if cfg.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("config: UPSTREAM_BASE_URL es obligatorio")
	}
	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return nil, fmt.Errorf("config: CACHE_BACKEND inválido %q", cfg.Cache.Backend)
	}
	if cfg.Session.Storage != "memory" && cfg.Session.Storage != "postgres" {
		return nil, fmt.Errorf("config: SESSION_STORAGE inválido %q", cfg.Session.Storage)
	}
	cfg.Upstream.RetryMax = min(max(cfg.Upstream.RetryMax, 0), MaxUpstreamRetries)
	return cfg, nil
}

// MaxUpstreamRetries tope de reintentos de una lectura al upstream.
const MaxUpstreamRetries = 3

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
