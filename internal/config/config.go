package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	LogLevel     string
	Environment  string
	CORSOrigins  string
	ChartFormat  string
	ChartWidth   int
	ChartHeight  int
	IsolateSlots bool
	MaxPageBytes int
}

// Load reads the configuration from the environment. A .env file in the
// working directory, when present, seeds variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		CORSOrigins:  getEnv("CORS_ORIGINS", "*"),
		ChartFormat:  getEnv("CHART_FORMAT", "svg"),
		ChartWidth:   getEnvInt("CHART_WIDTH", 640),
		ChartHeight:  getEnvInt("CHART_HEIGHT", 400),
		IsolateSlots: getEnvBool("ISOLATE_SLOTS", false),
		MaxPageBytes: getEnvInt("MAX_PAGE_BYTES", 2<<20),
	}
}

// StoreEnabled reports whether a payload database is configured.
func (c *Config) StoreEnabled() bool {
	return c.DatabaseURL != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(getEnv(key, "")))
	if err != nil {
		return fallback
	}
	return v
}
