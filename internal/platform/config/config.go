package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"3001"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	CatalogSize      int `env:"CATALOG_SIZE" default:"1000"`
	ListDefaultLimit int `env:"LIST_DEFAULT_LIMIT" default:"1000"`
	ListMaxLimit     int `env:"LIST_MAX_LIMIT" default:"1000"`

	CORSAllowedOrigins string  `env:"CORS_ALLOWED_ORIGINS" default:"*"`
	RateLimitRPS       float64 `env:"RATE_LIMIT_RPS" default:"50"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" default:"100"`

	// Optional. When set, change events are also published to Redis.
	RedisURL string `env:"REDIS_URL"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return errors.New("PORT is required")
	}
	if cfg.CatalogSize <= 0 {
		return fmt.Errorf("CATALOG_SIZE must be positive, got %d", cfg.CatalogSize)
	}
	if cfg.ListDefaultLimit <= 0 {
		return fmt.Errorf("LIST_DEFAULT_LIMIT must be positive, got %d", cfg.ListDefaultLimit)
	}
	if cfg.ListMaxLimit < cfg.ListDefaultLimit {
		return fmt.Errorf("LIST_MAX_LIMIT (%d) must not be below LIST_DEFAULT_LIMIT (%d)", cfg.ListMaxLimit, cfg.ListDefaultLimit)
	}
	if len(cfg.AllowedOrigins()) == 0 {
		return errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}
	if cfg.RateLimitRPS <= 0 {
		return errors.New("RATE_LIMIT_RPS must be positive")
	}
	if cfg.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_BURST must be positive")
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return nil
}
