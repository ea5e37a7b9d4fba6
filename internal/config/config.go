package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds service configuration loaded from the environment.
type Config struct {
	// HTTP
	Port string

	// Database
	DBPath string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Tokens
	JWTSecret string
	// TokenTTL is the expiry embedded in token claims.
	TokenTTL time.Duration
	// StoreTTL is the redis entry lifetime. It must be >= TokenTTL so the
	// store never outlives a claim check; expired claims are rejected by the
	// codec regardless of whether the entry is still present.
	StoreTTL time.Duration

	// MultiLogin allows several concurrent sessions per account. When false,
	// each login overwrites the account's single store entry.
	MultiLogin bool
}

// Load reads configuration from OPSCONSOLE_* environment variables,
// falling back to development defaults.
func Load() Config {
	cfg := Config{
		Port:          getEnv("OPSCONSOLE_PORT", "8080"),
		DBPath:        getEnv("OPSCONSOLE_DB_PATH", "./opsconsole.db"),
		RedisAddr:     getEnv("OPSCONSOLE_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("OPSCONSOLE_REDIS_PASSWORD"),
		RedisDB:       getEnvInt("OPSCONSOLE_REDIS_DB", 0),
		JWTSecret:     getEnv("OPSCONSOLE_JWT_SECRET", "change-me-in-production"),
		TokenTTL:      getEnvMinutes("OPSCONSOLE_TOKEN_EXPIRE_MINUTES", 1440),
		StoreTTL:      getEnvMinutes("OPSCONSOLE_STORE_EXPIRE_MINUTES", 1440),
		MultiLogin:    getEnvBool("OPSCONSOLE_MULTI_LOGIN", true),
	}

	// The store entry must survive at least as long as the claims it backs.
	if cfg.StoreTTL < cfg.TokenTTL {
		cfg.StoreTTL = cfg.TokenTTL
	}

	return cfg
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

func getEnvMinutes(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Minute
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true" || v == "1"
}
