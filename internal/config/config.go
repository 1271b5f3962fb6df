package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds every knob the gateway reads from the environment.
type Config struct {
	Port           string `env:"PORT" env-default:"3000"`
	BackendBaseURL string `env:"BACKEND_BASE_URL" env-required:"true"`

	// PayloadSecret feeds the request-body encryption key. The value and the
	// derivation salt must match what the backend team provisions.
	PayloadSecret string `env:"PAYLOAD_SECRET" env-required:"true"`
	PayloadSalt   string `env:"PAYLOAD_SALT" env-default:"shakti-payload-v1"`

	CookieDomain  string `env:"COOKIE_DOMAIN" env-default:""`
	CookieSecure  bool   `env:"COOKIE_SECURE" env-default:"true"`
	SessionDBDSN  string `env:"SESSION_DB_DSN" env-default:""`
	AllowedOrigin string `env:"ALLOWED_ORIGIN" env-default:"*"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
