package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// MinPort is the minimum valid port number.
	MinPort = 1
	// MaxPort is the maximum valid port number.
	MaxPort = 65535
)

// Config holds all configuration for the relay server.
type Config struct {
	Server ServerConfig
	Jobs   JobsConfig
	Store  StoreConfig
}

type ServerConfig struct {
	Port int
	Env  string
	// BaseURL is the absolute base used when building download URLs.
	// Empty means derive it from the incoming request's Host header.
	BaseURL string
}

type JobsConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type StoreConfig struct {
	Backend  string // memory or redis
	RedisURL string
}

var validBackends = map[string]bool{
	"memory": true,
	"redis":  true,
}

// Load reads configuration from environment variables and returns a
// validated Config. Returns an error with a descriptive message if any
// value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    envInt("PORT", 3000),
			Env:     envString("APP_ENV", "development"),
			BaseURL: os.Getenv("BASE_URL"),
		},
		Jobs: JobsConfig{
			TTL:           envDuration("JOB_TTL", 10*time.Minute),
			SweepInterval: envDuration("SWEEP_INTERVAL", 60*time.Second),
		},
		Store: StoreConfig{
			Backend:  envString("STORE_BACKEND", "memory"),
			RedisURL: os.Getenv("REDIS_URL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if !validBackends[c.Store.Backend] {
		return fmt.Errorf("STORE_BACKEND must be one of memory, redis; got %q", c.Store.Backend)
	}
	if c.Store.Backend == "redis" && c.Store.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when STORE_BACKEND is redis")
	}

	if c.Jobs.TTL <= 0 {
		return fmt.Errorf("JOB_TTL must be positive, got %s", c.Jobs.TTL)
	}
	if c.Jobs.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive, got %s", c.Jobs.SweepInterval)
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
