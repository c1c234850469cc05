// Package config loads process configuration from environment variables so
// main stays lean. Parsing uses struct tags; defaults suit local development.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures the full service configuration.
type Server struct {
	Addr string `env:"INSUREEASE_ADDR" envDefault:":8080"`

	// PostgresDSN enables the PostgreSQL store; empty selects the in-memory
	// store (development and tests).
	PostgresDSN string `env:"POSTGRES_DSN"`

	// RedisURL enables the status projection cache; empty disables caching.
	RedisURL       string        `env:"REDIS_URL"`
	StatusCacheTTL time.Duration `env:"STATUS_CACHE_TTL" envDefault:"5m"`

	SMTP SMTPConfig `envPrefix:"SMTP_"`

	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// SMTPConfig configures applicant notification delivery. An empty host
// selects the log mailer, which records instead of sending.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"no-reply@insureease.example"`
}

// FromEnv builds a Server config from environment variables.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, err
	}
	return cfg, nil
}
