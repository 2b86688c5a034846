package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.Equal(t, "gemini", cfg.Enrichment.Provider)
	assert.Equal(t, 30*time.Second, cfg.Enrichment.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Session.DraftTTL)
	assert.Equal(t, "5548999019525", cfg.Handoff.WhatsAppPhone)
	assert.Equal(t, "Cleber", cfg.Handoff.ContactName)
	assert.False(t, cfg.Mail.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Redis")
	t.Setenv("STORAGE_REDIS_ADDRESS", "cache:6379")
	t.Setenv("ENRICHMENT_PROVIDER", "openai")
	t.Setenv("ENRICHMENT_TIMEOUT", "5s")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Storage.Driver)
	assert.Equal(t, "cache:6379", cfg.Storage.Redis.Address)
	assert.Equal(t, "openai", cfg.Enrichment.Provider)
	assert.Equal(t, 5*time.Second, cfg.Enrichment.Timeout)
	assert.Equal(t, "sk-test", cfg.Enrichment.APIKey)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "storage.driver")
}

func TestLoadRequiresDSNForPostgres(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("STORAGE_POSTGRES_DSN", "")

	_, err := Load()
	assert.ErrorContains(t, err, "dsn")
}

func TestValidateConfigPort(t *testing.T) {
	cfg := &Config{
		Server:     ServerConfig{Port: 0},
		Storage:    StorageConfig{Driver: "memory"},
		Enrichment: EnrichmentConfig{Provider: "gemini"},
	}
	assert.Error(t, validateConfig(cfg))

	cfg.Server.Port = 8080
	assert.NoError(t, validateConfig(cfg))
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("POSTGRES_URL", "postgres://fd@db/fdweb")

	v := viper.New()
	v.Set("storage.postgres.dsn", "${POSTGRES_URL}")
	v.Set("app.name", "FD")
	expandEnvVars(v)

	assert.Equal(t, "postgres://fd@db/fdweb", v.GetString("storage.postgres.dsn"))
	assert.Equal(t, "FD", v.GetString("app.name"))
}
