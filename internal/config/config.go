package config

import (
	"os"
	"strconv"
	"strings"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr        string
	CORSOrigins []string
}

// DatasetConfig points at the static dataset and the derived-artifact root
type DatasetConfig struct {
	CSVPath     string
	DerivedRoot string
}

// RedisConfig holds the optional result-cache connection. An empty Addr
// disables caching entirely.
type RedisConfig struct {
	Addr     string
	Password string
	TTLHours int
}

// AuthConfig holds the optional API-key gate for the MCP surface
type AuthConfig struct {
	APIKey string
	Header string
}

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Dataset DatasetConfig
	Redis   RedisConfig
	Auth    AuthConfig
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        getEnv("SCOUT_ADDR", ":8080"),
			CORSOrigins: splitList(getEnv("SCOUT_CORS_ORIGINS", "http://localhost:3000")),
		},
		Dataset: DatasetConfig{
			CSVPath:     getEnv("SCOUT_DATASET", "data/players.csv"),
			DerivedRoot: getEnv("SCOUT_DERIVED_ROOT", "data/derived"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			TTLHours: getEnvInt("SCOUT_CACHE_TTL_HOURS", 12),
		},
		Auth: AuthConfig{
			APIKey: strings.TrimSpace(os.Getenv("SCOUT_API_KEY")),
			Header: getEnv("SCOUT_AUTH_HEADER", "X-API-Key"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
