// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SAUNA_DB_PATH" envDefault:"./data/site.db"`
	ServerHost string `env:"SAUNA_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SAUNA_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SAUNA_ENV" envDefault:"development"`
	SiteURL    string `env:"SAUNA_SITE_URL" envDefault:"http://localhost:8080"`
	LogLevel   string `env:"SAUNA_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"SAUNA_UPLOADS_DIR" envDefault:"./uploads"`

	// SecretKey feeds CSRF token authentication. Must be at least 32 bytes
	// and must be replaced in production.
	SecretKey string `env:"SAUNA_SECRET_KEY" envDefault:"dev-secret-key-change-in-production!"`

	// Cache configuration
	RedisURL    string `env:"SAUNA_REDIS_URL"`                       // Optional Redis URL for shared caching
	CachePrefix string `env:"SAUNA_CACHE_PREFIX" envDefault:"site:"` // Redis key prefix

	// hCaptcha configuration
	HCaptchaSiteKey   string `env:"SAUNA_HCAPTCHA_SITE_KEY"`
	HCaptchaSecretKey string `env:"SAUNA_HCAPTCHA_SECRET_KEY"`

	// Lead form rate limiting: sustained submissions per minute per client,
	// with a burst allowance.
	LeadRatePerMinute float64 `env:"SAUNA_LEAD_RATE_PER_MINUTE" envDefault:"6"`
	LeadRateBurst     int     `env:"SAUNA_LEAD_RATE_BURST" envDefault:"3"`

	// Admin bootstrap: when no admin user exists, one is created from these
	// on startup. Leave empty to skip.
	AdminEmail    string `env:"SAUNA_ADMIN_EMAIL"`
	AdminPassword string `env:"SAUNA_ADMIN_PASSWORD"`

	// Featured products shown on the home page.
	FeaturedLimit int64 `env:"SAUNA_FEATURED_LIMIT" envDefault:"3"`

	// HTTP timeouts.
	ReadTimeout     time.Duration `env:"SAUNA_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SAUNA_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SAUNA_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// defaultSecretKey is the development fallback baked into the SecretKey
// envDefault tag. It is public knowledge, so production refuses to start
// with it.
const defaultSecretKey = "dev-secret-key-change-in-production!"

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// HCaptchaEnabled returns true if hCaptcha is configured.
func (c Config) HCaptchaEnabled() bool {
	return c.HCaptchaSiteKey != "" && c.HCaptchaSecretKey != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.FeaturedLimit < 1 {
		return nil, fmt.Errorf("SAUNA_FEATURED_LIMIT must be positive, got %d", cfg.FeaturedLimit)
	}
	if cfg.LeadRatePerMinute <= 0 || cfg.LeadRateBurst < 1 {
		return nil, fmt.Errorf("lead rate limit settings must be positive")
	}
	if len(cfg.SecretKey) < 32 {
		return nil, fmt.Errorf("SAUNA_SECRET_KEY must be at least 32 bytes long, got %d; "+
			"generate one with: openssl rand -base64 32", len(cfg.SecretKey))
	}
	if cfg.Env == "production" && cfg.SecretKey == defaultSecretKey {
		return nil, fmt.Errorf("SAUNA_SECRET_KEY is the development default; " +
			"generate one with: openssl rand -base64 32")
	}

	return cfg, nil
}
