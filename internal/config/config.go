package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Ledger   LedgerConfig
	Service  ServiceConfig
	Booking  BookingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// IsProduction reports whether error details must be hidden
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	SQLitePath   string
	AutoMigrate  bool
	MaxOpenConns int
}

// URL returns the postgres connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
	Enabled  bool
}

// JWTConfig describes tokens issued by the auth service
type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// LedgerConfig holds ledger and wallet economics
type LedgerConfig struct {
	// SigningKey is a hex secp256k1 private key; empty disables block signing
	SigningKey             string
	StartingBalance        decimal.Decimal
	FeeRate                decimal.Decimal
	StatsWindow            int
	IntegrityCheckInterval time.Duration
}

// ServiceConfig authenticates trusted callers (booking service)
type ServiceConfig struct {
	KeyHash string
}

// BookingConfig configures the booking orchestrator process
type BookingConfig struct {
	Port              string
	DBName            string
	LedgerURL         string
	ServiceKey        string
	RequestTimeout    time.Duration
	ReconcileInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "postgres"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			DBName:       getEnv("DB_NAME", "ledger"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			SQLitePath:   getEnv("DB_SQLITE_PATH", "ledger.db"),
			AutoMigrate:  getEnvAsBool("DB_AUTO_MIGRATE", true),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 20),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
			Issuer: getEnv("JWT_ISSUER", ""),
		},
		Ledger: LedgerConfig{
			SigningKey:             strings.TrimPrefix(getEnv("LEDGER_SIGNING_KEY", ""), "0x"),
			StartingBalance:        getEnvAsDecimal("LEDGER_STARTING_BALANCE", decimal.NewFromInt(1000)),
			FeeRate:                getEnvAsDecimal("LEDGER_FEE_RATE", decimal.RequireFromString("0.01")),
			StatsWindow:            getEnvAsInt("LEDGER_STATS_WINDOW", 1000),
			IntegrityCheckInterval: getEnvAsDuration("LEDGER_INTEGRITY_INTERVAL", 10*time.Minute),
		},
		Service: ServiceConfig{
			KeyHash: getEnv("SERVICE_KEY_HASH", ""),
		},
		Booking: BookingConfig{
			Port:              getEnv("BOOKING_PORT", "8081"),
			DBName:            getEnv("BOOKING_DB_NAME", "booking"),
			LedgerURL:         strings.TrimRight(getEnv("LEDGER_SERVICE_URL", "http://localhost:8080"), "/"),
			ServiceKey:        getEnv("LEDGER_SERVICE_KEY", ""),
			RequestTimeout:    getEnvAsDuration("LEDGER_REQUEST_TIMEOUT", 10*time.Second),
			ReconcileInterval: getEnvAsDuration("BOOKING_RECONCILE_INTERVAL", time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil && !d.IsNegative() {
			return d
		}
	}
	return defaultValue
}
