package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	RedisURL   string
	// UpstreamBaseURL is the base URL of the remote exam API that owns
	// authentication and exam data. The gateway is only a client of it.
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	// PageSize is the number of exam rows per dashboard table page.
	PageSize int
	// PagerDelta is the number of page numbers shown on each side of the
	// current page in the compressed pager.
	PagerDelta int
	// SnapshotTTL bounds how long a cached dashboard payload may be served
	// when the upstream API is unreachable.
	SnapshotTTL time.Duration
	// AllowedOrigins controls HTTP CORS for the rendering layer.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "pretty"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "http://localhost:8000"),
		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		PageSize:        getEnvInt("PAGE_SIZE", 5),
		PagerDelta:      getEnvInt("PAGER_DELTA", 2),
		SnapshotTTL:     time.Duration(getEnvInt("SNAPSHOT_TTL_SECONDS", 300)) * time.Second,
		AllowedOrigins:  parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
