package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	SessionDuration time.Duration
	UploadMaxSize   int64

	// Outbound email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	EmailDebug   bool

	// Base URL used in email links
	AppBaseURL string

	// Operator address for lockout security alerts
	SecurityAlertEmail string

	// Secret used to sign RSVP access grant tokens
	GrantSecret string

	// Initial admin account, seeded when the users table is empty
	AdminEmail    string
	AdminPassword string

	// Google OAuth client for the Sheets guest import
	GoogleClientID     string
	GoogleClientSecret string

	// Wedding details used in invitation codes and email copy
	WeddingYear     string
	CoupleNames     string
	WeddingLocation string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./weddinghub.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionDuration: getEnvDuration("SESSION_DURATION", 24*time.Hour),
		UploadMaxSize:   getEnvInt64("UPLOAD_MAX_SIZE", 5*1024*1024), // 5MB

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", ""),
		EmailDebug:   getEnvBool("EMAIL_DEBUG", false),

		AppBaseURL: getEnv("APP_BASE_URL", "http://localhost:8080"),

		SecurityAlertEmail: getEnv("SECURITY_ALERT_EMAIL", ""),

		GrantSecret: getEnv("GRANT_SECRET", ""),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),

		WeddingYear:     getEnv("WEDDING_YEAR", "2026"),
		CoupleNames:     getEnv("COUPLE_NAMES", "Emme & CeeJay"),
		WeddingLocation: getEnv("WEDDING_LOCATION", "Colorado"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
