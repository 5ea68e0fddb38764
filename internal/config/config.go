package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr            string
	DatabaseURL     string
	RedisURL        string
	SessionTTL      time.Duration
	PaymentProvider string
	FeaturedCount   int
	AdminAPI        bool
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. Values that fail to parse
// fall back to their defaults.
func Load() Config {
	return Config{
		Addr:            getEnv("STORE_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		SessionTTL:      getDuration("SESSION_TTL", 30*time.Minute),
		PaymentProvider: strings.ToLower(getEnv("PAYMENT_PROVIDER", "mock")),
		FeaturedCount:   getInt("FEATURED_COUNT", 10),
		AdminAPI:        getBool("ADMIN_API", false),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "json")),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// UsesMemoryCatalog reports whether the app runs without Postgres and serves
// the seeded in-memory catalog instead.
func (c Config) UsesMemoryCatalog() bool {
	return c.DatabaseURL == ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
