package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret enables local verification of the backend's access-token
	// cookie. When empty the gateway resolves every session by asking the
	// backend instead.
	JWTSecret string `env:"JWT_SECRET"`

	API   APIConfig
	Redis RedisConfig
}

type APIConfig struct {
	// BaseURL points at the news backend this gateway fronts.
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:5000/api"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

type RedisConfig struct {
	// Addr left empty disables the gateway session cache.
	Addr       string        `env:"REDIS_ADDR"`
	DB         int           `env:"REDIS_DB,          default=0"`
	SessionTTL time.Duration `env:"SESSION_CACHE_TTL, default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Development reports whether the gateway runs in a development environment.
func (c *Config) Development() bool {
	return c.Env == "development"
}
