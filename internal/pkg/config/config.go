package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,default=8080"`
	Env      string `env:"ENV,default=development"`
	LogLevel string `env:"LOG_LEVEL,default=info"`

	API     APIConfig
	Session SessionConfig
	Cart    CartConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// APIConfig points at the remote event/ordering REST API.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL,default=https://backend.omnicassion.com"`
	Timeout time.Duration `env:"API_TIMEOUT,default=10s"`
}

type SessionConfig struct {
	CookieName   string        `env:"SESSION_COOKIE,default=sid"`
	TTL          time.Duration `env:"SESSION_TTL,default=24h"`
	SecureCookie bool          `env:"SESSION_SECURE_COOKIE,default=false"`
	// LoginRate is the allowed login attempts per second per client IP.
	LoginRate float64 `env:"LOGIN_RATE_LIMIT,default=1"`
}

type CartConfig struct {
	TTL time.Duration `env:"CART_TTL,default=12h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI,default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,default=table_ordering"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,default=0"`
}

// IsDevelopment reports whether pretty console logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
