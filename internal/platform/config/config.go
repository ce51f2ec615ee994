package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service configuration, loaded from environment
// variables. godotenv runs in the composition roots, not here.
type Config struct {
	Server   ServerConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Provider ProviderConfig
	Engine   EngineConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Enabled  bool
}

type DatabaseConfig struct {
	// URL is a Postgres connection string; empty disables the SQL caches.
	URL string
}

// ProviderConfig selects and configures the mapping provider.
type ProviderConfig struct {
	// Kind is "http" or "mock".
	Kind    string
	APIKey  string
	BaseURL string
}

// EngineConfig tunes rate limiting and cache freshness.
type EngineConfig struct {
	RateLimit        int
	RateWindow       time.Duration
	DistanceCacheTTL time.Duration
}

// Load reads configuration from the environment with development defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Provider: ProviderConfig{
			Kind:    getEnv("MAP_PROVIDER", "mock"),
			APIKey:  getEnv("MAP_PROVIDER_API_KEY", ""),
			BaseURL: getEnv("MAP_PROVIDER_BASE_URL", "https://api.openrouteservice.org"),
		},
		Engine: EngineConfig{
			RateLimit:        getEnvAsInt("RATE_LIMIT_CALLS", 60),
			RateWindow:       getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
			DistanceCacheTTL: getEnvAsDuration("DISTANCE_CACHE_TTL", 15*time.Minute),
		},
	}

	if cfg.Provider.Kind == "http" && cfg.Provider.APIKey == "" {
		return nil, fmt.Errorf("MAP_PROVIDER_API_KEY is required when MAP_PROVIDER=http")
	}

	return cfg, nil
}

// RedisAddr returns the host:port address for the Redis client.
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
