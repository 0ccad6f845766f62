package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port        string
	ServiceName string
	Env         string

	DBDriver      string
	MongoURI      string
	MongoDatabase string
	PostgresDSN   string

	CORSOrigin string

	AuthProviderURL string
	AuthSecretKey   string
	AuthAdminRole   string
	RedisURL        string
	AuthCacheTTL    time.Duration

	TracesExporter string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	ttl, err := time.ParseDuration(getenv("AUTH_CACHE_TTL", "60s"))
	if err != nil || ttl <= 0 {
		ttl = time.Minute
	}
	return Config{
		Port:            getenv("PORT", "8000"),
		ServiceName:     getenv("SERVICE_NAME", "storex-api"),
		Env:             getenv("ENV", "dev"),
		DBDriver:        strings.ToLower(getenv("DB_DRIVER", DriverMongo)),
		MongoURI:        getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getenv("MONGODB_DATABASE", "storex"),
		PostgresDSN:     getenv("POSTGRES_DSN", ""),
		CORSOrigin:      getenv("CORS_ORIGIN", "http://localhost:5173"),
		AuthProviderURL: strings.TrimRight(getenv("AUTH_PROVIDER_URL", "http://localhost:9000"), "/"),
		AuthSecretKey:   getenv("AUTH_SECRET_KEY", ""),
		AuthAdminRole:   getenv("AUTH_ADMIN_ROLE", "admin"),
		RedisURL:        getenv("REDIS_URL", ""),
		AuthCacheTTL:    ttl,
		TracesExporter:  strings.ToLower(getenv("OTEL_TRACES_EXPORTER", "none")),
	}
}

// Validate reports configuration that would make the server unusable at startup.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("config: MONGODB_URI and MONGODB_DATABASE are required for driver %q", c.DBDriver)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("config: POSTGRES_DSN is required for driver %q", c.DBDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}
	switch c.TracesExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("config: unknown OTEL_TRACES_EXPORTER %q", c.TracesExporter)
	}
	return nil
}

// Fields returns the non-secret settings for the startup log line.
func (c Config) Fields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("db_driver", c.DBDriver),
		zap.String("cors_origin", c.CORSOrigin),
		zap.String("auth_provider_url", c.AuthProviderURL),
		zap.Bool("auth_cache", c.RedisURL != ""),
		zap.String("traces_exporter", c.TracesExporter),
	}
}
