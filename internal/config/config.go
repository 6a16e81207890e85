package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given
// interval. A zero value disables limiting.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL     string
	Port            string
	MailerBaseURL   string
	ContactNotifyTo string
	RateLimitSubmit RateLimitConfig
}

// Load reads configuration from environment variables. DATABASE_URL is
// required so a misconfigured deployment fails at boot instead of on the
// first submission. Submission rate limiting stays off unless
// RATE_LIMIT_SUBMIT is set; the honeypot is the only default abuse control.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		Port:            getEnv("PORT", "8080"),
		MailerBaseURL:   os.Getenv("MAILER_BASE_URL"),
		ContactNotifyTo: os.Getenv("CONTACT_NOTIFY_TO"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if raw := getEnv("RATE_LIMIT_SUBMIT", ""); raw != "" {
		rl, err := parseRateLimit(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_SUBMIT value: %w", err)
		}
		cfg.RateLimitSubmit = rl
	}

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}
