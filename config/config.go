package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultFDCBaseURL       = "https://api.nal.usda.gov/fdc/v1"
	defaultLookupCacheTTL   = 6 * time.Hour
	defaultRateLimit        = 30
	defaultRateLimitWindow  = time.Minute
	defaultExportBucketName = "macrotrack-diary-exports"
	demoFDCAPIKey           = "DEMO_KEY"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// FoodData Central lookup
	FDCAPIKey      string
	FDCBaseURL     string
	LookupCacheTTL time.Duration

	// Food search rate limiting, per user
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Diary exports
	ExportBucket string
	AWSRegion    string
}

// DSN returns the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}
	applyDefaults(cfg, env)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig loads configuration for CI environment from environment variables only
func loadCIConfig(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	cfg.FDCAPIKey = os.Getenv("TEST_FDC_API_KEY")

	loadTuning(cfg, os.Getenv)
}

// loadDevConfig reads .env (if any) and then prefers Docker secrets, falling
// back to the environment for anything not mounted.
func loadDevConfig(cfg *Config) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] Failed to read .env: %v", err)
	}

	get := func(name string) string {
		if v := readSecret(name); v != "" {
			return v
		}
		return os.Getenv(strings.ToUpper(name))
	}

	cfg.ServerPort = get("server_port")
	cfg.ServerHost = get("server_host")
	cfg.DBHost = get("db_host")
	cfg.DBPort = get("db_port")
	cfg.DBUser = get("db_user")
	cfg.DBPassword = get("db_password")
	cfg.DBName = get("db_name")
	cfg.DBSSLMode = get("db_ssl_mode")
	cfg.RedisHost = get("redis_host")
	cfg.RedisPort = get("redis_port")
	cfg.RedisPassword = get("redis_password")
	cfg.RedisURL = get("redis_url")
	cfg.JWTSecret = get("jwt_secret")
	cfg.FDCAPIKey = get("fdc_api_key")

	loadTuning(cfg, os.Getenv)
}

// loadProdConfig loads configuration for production environment using ONLY Docker secrets
func loadProdConfig(cfg *Config) {
	cfg.ServerPort = readSecret("server_port")
	cfg.ServerHost = readSecret("server_host")
	cfg.DBHost = readSecret("db_host")
	cfg.DBPort = readSecret("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = readSecret("db_name")
	cfg.DBSSLMode = readSecret("db_ssl_mode")
	cfg.RedisHost = readSecret("redis_host")
	cfg.RedisPort = readSecret("redis_port")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = readSecret("redis_url")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.FDCAPIKey = readSecret("fdc_api_key")

	loadTuning(cfg, readSecret)
}

// loadTuning reads the non-sensitive knobs shared by every environment.
func loadTuning(cfg *Config, get func(string) string) {
	key := func(name string) string {
		if v := get(name); v != "" {
			return v
		}
		return get(strings.ToLower(name))
	}

	cfg.FDCBaseURL = key("FDC_BASE_URL")
	cfg.ExportBucket = key("S3_BUCKET_NAME")
	cfg.AWSRegion = key("AWS_REGION")
	cfg.RedisDB = parseInt(key("REDIS_DB"), 0)
	cfg.RateLimitRequests = parseInt(key("RATE_LIMIT_REQUESTS"), 0)
	cfg.LookupCacheTTL = parseDuration(key("LOOKUP_CACHE_TTL"))
	cfg.RateLimitWindow = parseDuration(key("RATE_LIMIT_WINDOW"))
}

func applyDefaults(cfg *Config, env Environment) {
	if cfg.FDCAPIKey == "" && env != Production {
		cfg.FDCAPIKey = demoFDCAPIKey
	}
	if cfg.FDCBaseURL == "" {
		cfg.FDCBaseURL = defaultFDCBaseURL
	}
	if cfg.LookupCacheTTL <= 0 {
		cfg.LookupCacheTTL = defaultLookupCacheTTL
	}
	if cfg.RateLimitRequests <= 0 {
		cfg.RateLimitRequests = defaultRateLimit
	}
	if cfg.RateLimitWindow <= 0 {
		cfg.RateLimitWindow = defaultRateLimitWindow
	}
	if cfg.ExportBucket == "" {
		cfg.ExportBucket = defaultExportBucketName
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("[Config] Ignoring invalid integer %q", s)
		return fallback
	}
	return n
}

func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("[Config] Ignoring invalid duration %q", s)
		return 0
	}
	return d
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
