// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"debo/internal/identity"
	"debo/pkg/db"
)

// SessionConfig holds session-token settings.
type SessionConfig struct {
	// TokenLength is the number of characters in an issued token.
	// Anything below 32 is raised to 32 to resist brute force.
	TokenLength int
	// TokenLifetime is how long an issued token stays valid.
	TokenLifetime time.Duration
}

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config
	Session    SessionConfig
	OAuth      identity.Config
}

// LoadConfig loads configuration from environment variables, reading a
// .env file first when one is present.
func LoadConfig() (*AppConfig, error) {
	// Missing .env is fine; the environment itself may be fully populated.
	_ = godotenv.Load()

	serverPort := envOr("SERVER_PORT", "8080")

	dbPort, err := strconv.Atoi(envOr("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	tokenLength, err := strconv.Atoi(envOr("SESSION_TOKEN_LENGTH", "64"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TOKEN_LENGTH: %w", err)
	}
	tokenLifetime, err := time.ParseDuration(envOr("SESSION_TOKEN_LIFETIME", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TOKEN_LIFETIME: %w", err)
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     envOr("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     envOr("DB_USER", "debo"),
			Password: envOr("DB_PASSWORD", "debo"),
			DBName:   envOr("DB_NAME", "debo"),
			SSLMode:  envOr("DB_SSLMODE", "disable"),
		},
		Session: SessionConfig{
			TokenLength:   tokenLength,
			TokenLifetime: tokenLifetime,
		},
		OAuth: identity.Config{
			ClientID:     os.Getenv("OAUTH_CLIENT_ID"),
			ClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
			RedirectURI:  os.Getenv("OAUTH_REDIRECT_URI"),
		},
	}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
