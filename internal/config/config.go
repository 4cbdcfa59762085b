// internal/config/config.go
//
// Environment-driven configuration for the Pattern Pursuit server.
// Every knob has a development-safe default so `go run .` works with no
// environment at all; production deploys override via real env vars (or a
// .env file loaded by main before parsing).

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries the full server configuration.
type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	DBPath         string `env:"DB_PATH" envDefault:"./data/patternpursuit.db"`
	JWTSecret      string `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME" envDefault:"pursuit_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	DailySalt      string `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv         string `env:"APP_ENV" envDefault:"development"`
}

// Load parses configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Production reports whether the server runs with production hardening
// (secure cookies, cross-site cookie mode).
func (c Config) Production() bool {
	return c.AppEnv == "production"
}
