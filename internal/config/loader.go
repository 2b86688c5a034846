package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	validDrivers   = []string{"memory", "redis", "postgres"}
	validProviders = []string{"gemini", "openai", "anthropic"}
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on
// top and lets environment variables override any key (storage.driver is
// STORAGE_DRIVER).
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := v.GetString("app.environment")
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	applyProviderKey(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// expandEnvVars resolves ${VAR} placeholders left in yaml values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "${") {
			continue
		}
		v.Set(key, os.ExpandEnv(strVal))
	}
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "FD Developer Web")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.public_url", "http://localhost:5173")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.key_prefix", "")
	v.SetDefault("storage.postgres.dsn", "")
	v.SetDefault("storage.postgres.max_open_conns", 10)
	v.SetDefault("storage.postgres.max_idle_conns", 5)
	v.SetDefault("storage.redis.address", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)

	v.SetDefault("enrichment.provider", "gemini")
	v.SetDefault("enrichment.api_key", "")
	v.SetDefault("enrichment.text_model", "")
	v.SetDefault("enrichment.image_model", "")
	v.SetDefault("enrichment.max_tokens", 4096)
	v.SetDefault("enrichment.timeout", 30*time.Second)
	v.SetDefault("enrichment.task_ttl", 30*time.Minute)

	v.SetDefault("handoff.whatsapp_phone", "5548999019525")
	v.SetDefault("handoff.contact_name", "Cleber")

	v.SetDefault("mail.enabled", false)
	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "")
	v.SetDefault("mail.from_name", "FD Developer Web")
	v.SetDefault("mail.to", "")
	v.SetDefault("mail.use_ssl", false)
	v.SetDefault("mail.require_tls", true)

	v.SetDefault("session.draft_ttl", 2*time.Hour)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func applyDefaults(cfg *Config) {
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	cfg.Enrichment.Provider = strings.ToLower(strings.TrimSpace(cfg.Enrichment.Provider))

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "memory"
	}
	if cfg.Enrichment.Provider == "" {
		cfg.Enrichment.Provider = "gemini"
	}
	if cfg.Enrichment.Timeout <= 0 {
		cfg.Enrichment.Timeout = 30 * time.Second
	}
	if cfg.Enrichment.TaskTTL <= 0 {
		cfg.Enrichment.TaskTTL = 30 * time.Minute
	}
	if cfg.Session.DraftTTL <= 0 {
		cfg.Session.DraftTTL = 2 * time.Hour
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}
}

// applyProviderKey falls back to the provider's conventional env var when no
// explicit enrichment key is configured.
func applyProviderKey(cfg *Config) {
	if cfg.Enrichment.APIKey != "" {
		return
	}
	var names []string
	switch cfg.Enrichment.Provider {
	case "gemini":
		names = []string{"GEMINI_API_KEY", "API_KEY"}
	case "openai":
		names = []string{"OPENAI_API_KEY"}
	case "anthropic":
		names = []string{"ANTHROPIC_API_KEY"}
	}
	for _, n := range names {
		if val := os.Getenv(n); val != "" {
			cfg.Enrichment.APIKey = val
			return
		}
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", cfg.Server.Port)
	}
	if !slices.Contains(validDrivers, cfg.Storage.Driver) {
		return fmt.Errorf("unknown storage.driver %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Driver == "postgres" && cfg.Storage.Postgres.DSN == "" {
		return errors.New("storage.postgres.dsn is required for the postgres driver")
	}
	if cfg.Storage.Driver == "redis" && cfg.Storage.Redis.Address == "" {
		return errors.New("storage.redis.address is required for the redis driver")
	}
	if !slices.Contains(validProviders, cfg.Enrichment.Provider) {
		return fmt.Errorf("unknown enrichment.provider %q", cfg.Enrichment.Provider)
	}
	if cfg.Mail.Enabled && (cfg.Mail.Host == "" || cfg.Mail.To == "" || cfg.Mail.From == "") {
		return errors.New("mail.host, mail.from and mail.to are required when mail is enabled")
	}
	return nil
}
