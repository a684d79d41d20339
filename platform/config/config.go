// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// StripeConfig provides settings for the payment processor integration.
type StripeConfig interface {
	GetStripeAPIBaseURL() string
	GetStripeAPIKey() string
	GetStripeRequestsPerSecond() float64
	IsStripeEnabled() bool
}

// CacheConfig provides settings for the Redis snapshot cache.
type CacheConfig interface {
	GetRedisURL() string
	GetSnapshotTTL() time.Duration
	IsCacheEnabled() bool
}

// SchedulerConfig provides settings for the background refresh worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetRefreshInterval() string
}

// EmailConfig provides settings for the attention digest email.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetDigestRecipients() []string
}

// DashboardConfig provides tuning knobs for the aggregation engine.
type DashboardConfig interface {
	GetAttentionRulesPath() string
	GetRecentItemsLimit() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                     string
	HTTPAddr                string
	DatabaseURL             string
	CORSAllowAll            bool
	CORSOrigins             []string
	StripeAPIBaseURL        string
	StripeAPIKey            string
	StripeRequestsPerSecond float64
	RedisURL                string
	SnapshotTTL             time.Duration
	AsynqQueueName          string
	AsynqConcurrency        int
	RefreshInterval         string
	EmailEnabled            bool
	SMTPHost                string
	SMTPPort                int
	SMTPUsername            string
	SMTPPassword            string
	EmailFromName           string
	EmailFromAddress        string
	DigestRecipients        []string
	AttentionRulesPath      string
	RecentItemsLimit        int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// StripeConfig implementation
func (c *Config) GetStripeAPIBaseURL() string         { return c.StripeAPIBaseURL }
func (c *Config) GetStripeAPIKey() string             { return c.StripeAPIKey }
func (c *Config) GetStripeRequestsPerSecond() float64 { return c.StripeRequestsPerSecond }
func (c *Config) IsStripeEnabled() bool               { return c.StripeAPIKey != "" }

// CacheConfig implementation
func (c *Config) GetRedisURL() string           { return c.RedisURL }
func (c *Config) GetSnapshotTTL() time.Duration { return c.SnapshotTTL }
func (c *Config) IsCacheEnabled() bool          { return c.RedisURL != "" }

// SchedulerConfig implementation
func (c *Config) GetAsynqQueueName() string  { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int   { return c.AsynqConcurrency }
func (c *Config) GetRefreshInterval() string { return c.RefreshInterval }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool         { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string           { return c.SMTPHost }
func (c *Config) GetSMTPPort() int              { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string       { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string       { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string      { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string   { return c.EmailFromAddress }
func (c *Config) GetDigestRecipients() []string { return c.DigestRecipients }

// DashboardConfig implementation
func (c *Config) GetAttentionRulesPath() string { return c.AttentionRulesPath }
func (c *Config) GetRecentItemsLimit() int      { return c.RecentItemsLimit }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true")

	cfg := &Config{
		Env:                     getEnv("APP_ENV", "development"),
		HTTPAddr:                getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		CORSAllowAll:            corsAllowAll,
		CORSOrigins:             corsOrigins,
		StripeAPIBaseURL:        getEnv("STRIPE_API_BASE_URL", "https://api.stripe.com"),
		StripeAPIKey:            getEnv("STRIPE_API_KEY", ""),
		StripeRequestsPerSecond: mustFloat(getEnv("STRIPE_REQUESTS_PER_SECOND", "5")),
		RedisURL:                getEnv("REDIS_URL", ""),
		SnapshotTTL:             mustDuration(getEnv("SNAPSHOT_TTL", "5m")),
		AsynqQueueName:          getEnv("ASYNQ_QUEUE", "dashboard"),
		AsynqConcurrency:        mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),
		RefreshInterval:         getEnv("REFRESH_INTERVAL", "@every 5m"),
		EmailEnabled:            emailEnabled && smtpHost != "",
		SMTPHost:                smtpHost,
		SMTPPort:                mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:            getEnv("SMTP_USERNAME", ""),
		SMTPPassword:            getEnv("SMTP_PASSWORD", ""),
		EmailFromName:           getEnv("EMAIL_FROM_NAME", "Opsboard"),
		EmailFromAddress:        getEnv("EMAIL_FROM_ADDRESS", ""),
		DigestRecipients:        splitCSV(getEnv("DIGEST_RECIPIENTS", "")),
		AttentionRulesPath:      getEnv("ATTENTION_RULES_PATH", ""),
		RecentItemsLimit:        mustInt(getEnv("RECENT_ITEMS_LIMIT", "10")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.EmailEnabled && len(cfg.DigestRecipients) == 0 {
		return nil, fmt.Errorf("DIGEST_RECIPIENTS is required when email is enabled")
	}
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = 5 * time.Minute
	}
	if cfg.RecentItemsLimit < 1 {
		cfg.RecentItemsLimit = 10
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
