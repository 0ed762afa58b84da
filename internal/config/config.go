package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage backend names
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

// Config is the server configuration, loaded from the environment
// (optionally seeded from a .env file)
type Config struct {
	Host string `envconfig:"HOST" default:""`
	Port int    `envconfig:"PORT" default:"8080"`

	// Leaderboard backend: memory or redis
	StorageType string `envconfig:"STORAGE_TYPE" default:"memory"`
	RedisURL    string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`

	// Idle-room sweeping
	ReapInterval time.Duration `envconfig:"REAP_INTERVAL" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"180s"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment. A missing .env file
// is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("partyroom", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot run with
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	switch c.StorageType {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage type %q", c.StorageType)
	}
	if c.ReapInterval <= 0 {
		return fmt.Errorf("reap interval must be positive, got %s", c.ReapInterval)
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %s", c.IdleTimeout)
	}
	return nil
}
