package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without zoneinfo

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL string
	LogLevel    string
	Environment string

	Timezone             string
	Location             *time.Location
	CronSpecDaily        string // When the daily reminder pass runs, in Location
	RunOnStart           bool   // Also run a pass right after startup
	PassTimeout          time.Duration
	CandidateHorizonDays int

	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	MailFrom       string
	MailRatePerSec int
	EventLinkBase  string // Optional; reminder mails link to <base>/<event id>

	TelegramToken   string // Optional; enables the admin bot
	AdminTelegramID int64

	HTTPAddr       string // Optional; enables the admin HTTP API
	AdminJWTSecret string

	RedisURL    string // Optional; enables the distributed pass lock
	PassLockTTL time.Duration
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.Timezone = envOr("TIMEZONE", "UTC")
	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg.CronSpecDaily = envOr("CRON_SPEC_DAILY", "0 8 * * *") // Default: 8:00 AM daily

	if cfg.RunOnStart, err = envBool("RUN_ON_START", false); err != nil {
		return nil, err
	}
	if cfg.PassTimeout, err = envDuration("PASS_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CandidateHorizonDays, err = envInt("CANDIDATE_HORIZON_DAYS", 31); err != nil {
		return nil, err
	}
	if cfg.CandidateHorizonDays < 30 {
		return nil, fmt.Errorf("CANDIDATE_HORIZON_DAYS must be at least 30, got %d", cfg.CandidateHorizonDays)
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}
	if cfg.SMTPPort, err = envInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")

	cfg.MailFrom = os.Getenv("MAIL_FROM")
	if cfg.MailFrom == "" {
		return nil, fmt.Errorf("MAIL_FROM is not set")
	}
	if cfg.MailRatePerSec, err = envInt("MAIL_RATE_PER_SEC", 2); err != nil {
		return nil, err
	}
	if cfg.MailRatePerSec <= 0 {
		return nil, fmt.Errorf("MAIL_RATE_PER_SEC must be positive, got %d", cfg.MailRatePerSec)
	}
	cfg.EventLinkBase = os.Getenv("EVENT_LINK_BASE")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken != "" {
		adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
		if adminIDStr == "" {
			return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
		}
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	cfg.AdminJWTSecret = os.Getenv("ADMIN_JWT_SECRET")
	if cfg.HTTPAddr != "" && len(cfg.AdminJWTSecret) < 32 {
		return nil, fmt.Errorf("ADMIN_JWT_SECRET must be at least 32 bytes when HTTP_ADDR is set")
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")
	if cfg.PassLockTTL, err = envDuration("PASS_LOCK_TTL", time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
