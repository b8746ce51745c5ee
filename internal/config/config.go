package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Report store backends
const (
	ReportStoreFixture = "fixture"
	ReportStoreMySQL   = "mysql"
)

// Config holds all configuration for the application
type Config struct {
	AppMode     string
	WebPort     string
	APIPort     string
	LogDir      string
	ReportStore string
	Database    DatabaseConfig
	Session     SessionConfig
	Cookie      CookieConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// SessionConfig holds the session slot and cookie signing settings
type SessionConfig struct {
	DBPath        string
	Secret        string
	Days          int
	SweepSchedule string
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// Load reads configuration from .env file and environment variables.
// The bool reports whether a .env file was read so the caller can log it
// once a logger exists.
func Load() (*Config, bool, error) {
	envFound := godotenv.Load() == nil

	// trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, envFound, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	store := strings.ToLower(strings.TrimSpace(getEnv("REPORT_STORE", ReportStoreFixture)))
	if store != ReportStoreFixture && store != ReportStoreMySQL {
		return nil, envFound, fmt.Errorf("invalid REPORT_STORE: '%s' (must be 'fixture' or 'mysql')", store)
	}

	session, err := loadSessionConfig(appMode)
	if err != nil {
		return nil, envFound, err
	}

	return &Config{
		AppMode:     appMode,
		WebPort:     getEnv("WEB_PORT", "3000"),
		APIPort:     getEnv("API_PORT", "5000"),
		LogDir:      getEnv("LOG_DIR", ""),
		ReportStore: store,
		Database:    loadDatabaseConfig(appMode),
		Session:     session,
		Cookie:      loadCookieConfig(),
	}, envFound, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "resqall"),
	}
}

func loadSessionConfig(mode string) (SessionConfig, error) {
	days, err := strconv.Atoi(getEnv("SESSION_DAYS", "30"))
	if err != nil || days < 1 {
		return SessionConfig{}, fmt.Errorf("invalid SESSION_DAYS: must be a positive integer")
	}

	secret := getEnv("SESSION_SECRET", "")
	if secret == "" {
		if mode == "prod" {
			return SessionConfig{}, fmt.Errorf("SESSION_SECRET is required in prod mode")
		}
		secret = "dev_session_secret"
	}

	return SessionConfig{
		DBPath:        getEnv("SESSION_DB_PATH", "data/sessions.db"),
		Secret:        secret,
		Days:          days,
		SweepSchedule: getEnv("SESSION_SWEEP_SCHEDULE", "@hourly"),
	}, nil
}

// loadCookieConfig loads cookie config
func loadCookieConfig() CookieConfig {
	secure, _ := strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://resqall.com"
	}
	return origins
}
