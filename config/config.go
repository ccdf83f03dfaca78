package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// MailerConfig holds configuration for the organizer notification mailer.
type MailerConfig struct {
	Provider           string // "ses" or "noop"
	FromAddress        string
	FromName           string
	NotifyAddress      string
	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
}

// Config holds all configuration for the application
type Config struct {
	DBUrl               string
	GoogleAppsScriptURL string
	Environment         string
	Port                string
	CORSAllowedOrigins  []string
	Mailer              MailerConfig
}

// Load loads configuration from environment variables.
// It attempts to load from a .env file when not in production; a missing
// .env is not an error because production relies on the real environment.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:         env,
		DBUrl:               os.Getenv("DATABASE_URL"),
		GoogleAppsScriptURL: os.Getenv("GOOGLE_APPS_SCRIPT_URL"),
		Port:                os.Getenv("PORT"),
		CORSAllowedOrigins:  splitOrigins(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Mailer: MailerConfig{
			Provider:           os.Getenv("MAILER_PROVIDER"),
			FromAddress:        os.Getenv("MAILER_FROM_ADDRESS"),
			FromName:           os.Getenv("MAILER_FROM_NAME"),
			NotifyAddress:      os.Getenv("MAILER_NOTIFY_ADDRESS"),
			SESRegion:          os.Getenv("SES_REGION"),
			SESAccessKeyID:     os.Getenv("SES_ACCESS_KEY_ID"),
			SESSecretAccessKey: os.Getenv("SES_SECRET_ACCESS_KEY"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Mailer.Provider == "" {
		cfg.Mailer.Provider = "noop"
	}

	// An empty DBUrl is deliberately allowed: the server starts in degraded
	// mode and every data operation fails until the database is configured.

	return cfg, nil
}

// splitOrigins parses a comma-separated origin list. Empty input means "*":
// the RSVP form is a public page, so CORS defaults to open.
func splitOrigins(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{"*"}
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
