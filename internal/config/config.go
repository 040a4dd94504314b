package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Retry    RetryConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	GracefulTimeout time.Duration
	AllowedOrigins  []string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	ConnectTimeout     time.Duration
	SlowQueryThreshold time.Duration
	MigrationsPath     string
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret         string
	JWTExpiry         time.Duration
	SessionTTL        time.Duration
	BCryptCost        int
	MinPasswordLength int
}

// CacheConfig holds cache provider configuration
type CacheConfig struct {
	Provider      string // "memory" or "redis"
	TTL           time.Duration
	RedisURL      string
	RedisDB       int
	RedisPassword string
}

// RetryConfig bounds the fetch-retry used for freshly provisioned rows
type RetryConfig struct {
	MaxAttempts int
	Interval    time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load builds configuration from the environment, reading a .env file
// outside production.
func Load() (*Config, error) {
	env := getEnv("GO_ENV", "development")
	if env != "production" {
		envFile := fmt.Sprintf(".env.%s", env)
		if _, err := os.Stat(envFile); err == nil {
			_ = godotenv.Load(envFile)
		} else {
			_ = godotenv.Load() // fallback to .env
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "9000"),
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Environment:     env,
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			GracefulTimeout: getDurationEnv("GRACEFUL_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxOpenConns:       getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getIntEnv("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime:    getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime:    getDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
			ConnectTimeout:     getDurationEnv("DB_CONNECT_TIMEOUT", 30*time.Second),
			SlowQueryThreshold: getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 100*time.Millisecond),
			MigrationsPath:     getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			JWTExpiry:         getDurationEnv("JWT_EXPIRY", 24*time.Hour),
			SessionTTL:        getDurationEnv("SESSION_TTL", 7*24*time.Hour),
			BCryptCost:        getIntEnv("BCRYPT_COST", 12),
			MinPasswordLength: getIntEnv("MIN_PASSWORD_LENGTH", 8),
		},
		Cache: CacheConfig{
			Provider:      getEnv("CACHE_PROVIDER", "memory"),
			TTL:           getDurationEnv("CACHE_TTL", 15*time.Minute),
			RedisURL:      getEnv("REDIS_URL", ""),
			RedisDB:       getIntEnv("REDIS_DB", 0),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
		},
		Retry: RetryConfig{
			MaxAttempts: getIntEnv("FETCH_RETRY_ATTEMPTS", 3),
			Interval:    getDurationEnv("FETCH_RETRY_INTERVAL", time.Second),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", defaultLogLevel(env)),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings the application cannot run without.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		c.Auth.JWTSecret = "development-only-secret"
	}
	if c.Auth.BCryptCost < 10 || c.Auth.BCryptCost > 16 {
		return fmt.Errorf("BCRYPT_COST must be between 10 and 16, got %d", c.Auth.BCryptCost)
	}
	if c.Cache.Provider == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when CACHE_PROVIDER=redis")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("FETCH_RETRY_ATTEMPTS must be at least 1")
	}
	return nil
}

// IsProduction returns true when running in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment returns true when running in development
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func defaultLogLevel(env string) string {
	if env == "production" {
		return "info"
	}
	return "debug"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
