package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("AUTH_CACHE_TTL", "")

	cfg := Load()
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, DriverMongo, cfg.DBDriver)
	assert.Equal(t, time.Minute, cfg.AuthCacheTTL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost:5432/storex")
	t.Setenv("AUTH_PROVIDER_URL", "https://auth.example.com/")
	t.Setenv("AUTH_CACHE_TTL", "5m")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "https://auth.example.com", cfg.AuthProviderURL)
	assert.Equal(t, 5*time.Minute, cfg.AuthCacheTTL)
	require.NoError(t, cfg.Validate())
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]Config{
		"unknown driver":    {DBDriver: "sqlite", TracesExporter: "none"},
		"postgres no dsn":   {DBDriver: DriverPostgres, TracesExporter: "none"},
		"mongo no database": {DBDriver: DriverMongo, MongoURI: "mongodb://x", TracesExporter: "none"},
		"unknown exporter":  {DBDriver: DriverMemory, TracesExporter: "jaeger"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
}
