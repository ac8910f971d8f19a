// Package config reads lexbridge settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver    string
	DatabaseURL string

	ExpertiseDir string

	AuditDir          string
	AuditWebhookURL   string
	AuditWebhookToken string

	OpenAIAPIKey string
	OpenAIModel  string

	StrictChallenges bool
	AllowedOrigins   []string
}

// Load applies .env (if present) and reads the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DatabaseURL:       getEnv("DATABASE_URL", "file:lexbridge.db"),
		ExpertiseDir:      getEnv("EXPERTISE_DIR", "config/expertise"),
		AuditDir:          getEnv("AUDIT_DIR", "logs/reasoning"),
		AuditWebhookURL:   getEnv("AUDIT_WEBHOOK_URL", ""),
		AuditWebhookToken: getEnv("AUDIT_WEBHOOK_TOKEN", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", ""),
		StrictChallenges:  getEnvBool("CHALLENGES_STRICT", false),
		AllowedOrigins:    getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL cannot be empty")
	}
	if c.ExpertiseDir == "" {
		return fmt.Errorf("EXPERTISE_DIR cannot be empty")
	}
	if c.AuditDir == "" {
		return fmt.Errorf("AUDIT_DIR cannot be empty")
	}
	return nil
}

// AIEnabled reports whether the answer step has credentials.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
