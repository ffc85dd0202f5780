// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"event-polling-api/internal/service"
)

type Config struct {
	DatabaseURL     string     `env:"DATABASE_URL"`
	JWTSecret       string     `env:"JWT_SECRET,required"`
	GRPCPort        string     `env:"PORT"             envDefault:"50051"`
	WebPort         string     `env:"WEB_PORT"         envDefault:"8080"`
	FrontendOrigins []string   `env:"FRONTEND_ORIGINS" envSeparator:","`
	RateLimitRPS    float64    `env:"RATE_LIMIT_RPS"   envDefault:"5"`
	RateLimitBurst  int        `env:"RATE_LIMIT_BURST" envDefault:"10"`
	WriteRetryMax   uint       `env:"WRITE_RETRY_MAX"  envDefault:"8"`
	OTelEndpoint    string     `env:"OTEL_ENDPOINT"`
	OTelEnabled     bool       `env:"OTEL_ENABLED"     envDefault:"true"`
	ServiceName     string     `env:"SERVICE_NAME"     envDefault:"event-polling-api"`
	LogLevel        slog.Level `env:"LOG_LEVEL"        envDefault:"info"`
}

// Load reads the given dotenv files (".env" when none are named) into the
// process environment, then parses Config. Missing dotenv files are ignored.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	return Parse()
}

// Parse builds Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.WriteRetryMax == 0 {
		return Config{}, fmt.Errorf("parse env: WRITE_RETRY_MAX must be positive")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return Config{}, fmt.Errorf("parse env: rate limit must be positive")
	}
	return cfg, nil
}

// RetryPolicy is the default write retry policy capped at WriteRetryMax attempts.
func (c Config) RetryPolicy() service.RetryPolicy {
	p := service.DefaultRetryPolicy()
	p.MaxTries = c.WriteRetryMax
	return p
}
