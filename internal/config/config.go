package config

import "time"

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Handoff    HandoffConfig    `mapstructure:"handoff"`
	Mail       MailConfig       `mapstructure:"mail"`
	Session    SessionConfig    `mapstructure:"session"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	// PublicURL is the site address used to build share links.
	PublicURL string `mapstructure:"public_url"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StorageConfig struct {
	// Driver is one of memory, redis, postgres.
	Driver    string         `mapstructure:"driver"`
	KeyPrefix string         `mapstructure:"key_prefix"`
	Postgres  PostgresConfig `mapstructure:"postgres"`
	Redis     RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type EnrichmentConfig struct {
	// Provider is one of gemini, openai, anthropic.
	Provider   string        `mapstructure:"provider"`
	APIKey     string        `mapstructure:"api_key"`
	TextModel  string        `mapstructure:"text_model"`
	ImageModel string        `mapstructure:"image_model"`
	MaxTokens  int64         `mapstructure:"max_tokens"`
	Timeout    time.Duration `mapstructure:"timeout"`
	TaskTTL    time.Duration `mapstructure:"task_ttl"`
}

type HandoffConfig struct {
	WhatsAppPhone string `mapstructure:"whatsapp_phone"`
	ContactName   string `mapstructure:"contact_name"`
}

type MailConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	FromName   string `mapstructure:"from_name"`
	To         string `mapstructure:"to"`
	UseSSL     bool   `mapstructure:"use_ssl"`
	RequireTLS bool   `mapstructure:"require_tls"`
}

type SessionConfig struct {
	DraftTTL time.Duration `mapstructure:"draft_ttl"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
