package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Market data provider
	Provider ProviderConfig

	// Analysis / discovery
	Cache CacheConfig
	Scan  ScanConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ProviderConfig holds market data provider configuration
type ProviderConfig struct {
	QuoteBaseURL  string
	ChartBaseURL  string
	SearchBaseURL string
	NewsBaseURL   string

	// Requests per second against the upstream API
	RateLimit float64
	Timeout   time.Duration
}

// CacheConfig holds fetch cache configuration
type CacheConfig struct {
	TTL       time.Duration // per-field fetch cache
	MoversTTL time.Duration // market movers scan results
}

// ScanConfig holds discovery scan configuration
type ScanConfig struct {
	Workers int // bounded parallelism per scan
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Provider: ProviderConfig{
			QuoteBaseURL:  getEnv("PROVIDER_QUOTE_URL", "https://query1.finance.yahoo.com/v10/finance/quoteSummary"),
			ChartBaseURL:  getEnv("PROVIDER_CHART_URL", "https://query1.finance.yahoo.com/v8/finance/chart"),
			SearchBaseURL: getEnv("PROVIDER_SEARCH_URL", "https://query1.finance.yahoo.com/v1/finance/search"),
			NewsBaseURL:   getEnv("PROVIDER_NEWS_URL", "https://finance.yahoo.com/quote"),
			RateLimit:     getEnvAsFloat("PROVIDER_RATE_LIMIT", 5.0),
			Timeout:       getEnvAsDuration("PROVIDER_TIMEOUT", "20s"),
		},

		Cache: CacheConfig{
			TTL:       getEnvAsDuration("FETCH_CACHE_TTL", "300s"),
			MoversTTL: getEnvAsDuration("MOVERS_CACHE_TTL", "600s"),
		},

		Scan: ScanConfig{
			Workers: getEnvAsInt("SCAN_WORKERS", 8),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("FETCH_CACHE_TTL must be positive")
	}

	if c.Scan.Workers <= 0 {
		return fmt.Errorf("SCAN_WORKERS must be positive")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
