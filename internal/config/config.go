package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the latencybench server and CLI.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Dashboard DashboardConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig is optional. An empty URL selects the in-process cache.
type RedisConfig struct {
	URL string
}

type CacheConfig struct {
	TTL time.Duration
}

type DashboardConfig struct {
	// WindowDays is the trailing window, in days, that averages and
	// history are computed over.
	WindowDays int
}

type RateLimitConfig struct {
	PerMinute int
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	minWindowDays = 1
	maxWindowDays = 365
)

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("LATENCYBENCH_PORT", 8080),
			Env:  envString("LATENCYBENCH_ENV", EnvDevelopment),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		Cache: CacheConfig{
			TTL: envDuration("CACHE_TTL", 5*time.Minute),
		},
		Dashboard: DashboardConfig{
			WindowDays: envInt("WINDOW_DAYS", 30),
		},
		RateLimit: RateLimitConfig{
			PerMinute: envInt("RATE_LIMIT_PER_MINUTE", 120),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == EnvDevelopment
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Server.Env != EnvDevelopment && c.Server.Env != EnvProduction {
		return fmt.Errorf("LATENCYBENCH_ENV must be one of development, production; got %q", c.Server.Env)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("LATENCYBENCH_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Dashboard.WindowDays < minWindowDays || c.Dashboard.WindowDays > maxWindowDays {
		return fmt.Errorf("WINDOW_DAYS must be between %d and %d, got %d", minWindowDays, maxWindowDays, c.Dashboard.WindowDays)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}

	if c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimit.PerMinute)
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
