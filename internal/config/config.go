package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env      string
	Port     string
	LogLevel string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth
	JWTSecret      string
	PipelineAPIKey string

	// Scheduler
	SnapshotSchedule string

	// Engine
	GoalOnTrackTolerance int64
	BillHorizonDays      int
	DebtStrategy         string

	// Metrics
	MetricsEnabled bool

	// Requests
	RequestTimeout time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:      getEnv("ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finsight"),
		DBPassword: getEnv("DB_PASSWORD", "finsight"),
		DBName:     getEnv("DB_NAME", "finsight"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Auth
		JWTSecret:      getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		// Scheduler
		SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "@daily"),

		DebtStrategy: getEnv("DEBT_STRATEGY", "avalanche"),
	}

	// "off" disables the snapshot job
	if config.SnapshotSchedule == "off" {
		config.SnapshotSchedule = ""
	}

	config.GoalOnTrackTolerance = getNonNegativeInt64("GOAL_ON_TRACK_TOLERANCE_CENTS", 1)
	config.BillHorizonDays = int(getNonNegativeInt64("BILL_HORIZON_DAYS", 30))

	metricsStr := getEnv("METRICS_ENABLED", "true")
	metricsEnabled, err := strconv.ParseBool(metricsStr)
	if err != nil {
		log.Printf("Warning: invalid METRICS_ENABLED value '%s', falling back to true\n", metricsStr)
		metricsEnabled = true
	}
	config.MetricsEnabled = metricsEnabled

	timeoutStr := getEnv("REQUEST_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid REQUEST_TIMEOUT value '%s', falling back to 30s\n", timeoutStr)
		timeout = 30 * time.Second
	}
	config.RequestTimeout = timeout

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// DatabaseURL returns the postgres:// URL used by golang-migrate.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// DSN returns the key/value connection string used by the GORM driver.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getNonNegativeInt64 reads a non-negative integer, falling back to
// defaultValue with a warning when the value is malformed or negative.
func getNonNegativeInt64(key string, defaultValue int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return v
}
