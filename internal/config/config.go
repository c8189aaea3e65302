// Package config reads service settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrNoTokenKey = errors.New("TOKEN_KEY environment variable is not set")

type Config struct {
	HTTP struct {
		Addr        string
		TLSCert     string
		TLSKey      string
		TLSDisabled bool
		StaticDir   string
	}
	DatabaseURL string
	TokenKey    string
	Redis       struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	AdminPassword string
	RateLimit     float64
	RateBurst     int
	FoodCacheTTL  time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":443")
	cfg.HTTP.TLSCert = getEnv("TLS_CERT", "server.crt")
	cfg.HTTP.TLSKey = getEnv("TLS_KEY", "server.key")
	cfg.HTTP.TLSDisabled = getBool("TLS_DISABLED", false)
	cfg.HTTP.StaticDir = getEnv("STATIC_DIR", "./static")

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.TokenKey = os.Getenv("TOKEN_KEY")
	if cfg.TokenKey == "" {
		return nil, ErrNoTokenKey
	}

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "admin123")
	cfg.RateLimit = getFloat("RATE_LIMIT", 1)
	cfg.RateBurst = getInt("RATE_BURST", 3)
	cfg.FoodCacheTTL = getDuration("FOOD_CACHE_TTL", 10*time.Minute)
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
