package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Finnhub   FinnhubConfig
	Scheduler SchedulerConfig
	Secrets   SecretsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// FinnhubConfig holds market data feed configuration
type FinnhubConfig struct {
	BaseURL     string
	APIKey      string
	MaxInFlight int
}

// SchedulerConfig holds background job configuration
type SchedulerConfig struct {
	PriceRefreshSpec  string
	DropThresholdPct  float64
	AlertCooldown     time.Duration
	LowValueSpec      string
	LowValueThreshold float64
}

// SecretsConfig holds the fernet key for encrypted settings
type SecretsConfig struct {
	Key string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/moneymap.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Finnhub: FinnhubConfig{
			BaseURL:     getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
			APIKey:      getEnv("FINNHUB_API_KEY", ""),
			MaxInFlight: getEnvInt("FINNHUB_MAX_IN_FLIGHT", 8),
		},
		Scheduler: SchedulerConfig{
			PriceRefreshSpec:  getEnv("PRICE_REFRESH_CRON", "*/15 * * * *"),
			DropThresholdPct:  getEnvFloat("PRICE_DROP_THRESHOLD_PCT", 5.0),
			AlertCooldown:     getEnvDuration("PRICE_ALERT_COOLDOWN", 6*time.Hour),
			LowValueSpec:      getEnv("LOW_VALUE_CHECK_CRON", "*/30 * * * *"),
			LowValueThreshold: getEnvFloat("LOW_VALUE_THRESHOLD", 1000),
		},
		Secrets: SecretsConfig{
			Key: getEnv("SECRETS_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvFloat gets a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

// getEnvDuration gets a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
