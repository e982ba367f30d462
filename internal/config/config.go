package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"ledgerview/internal/core"
)

const dateLayout = "2006-01-02"

type Config struct {
	// HTTP Server
	Port string

	// Ledger API
	BaseURL  string
	APIToken string

	// Cache
	CacheTTLMinutes int

	// Reporting period. Months is a trailing window used when PeriodStart
	// is not set; PeriodStart/PeriodEnd are YYYY-MM-DD overrides.
	Months      int
	PeriodStart string
	PeriodEnd   string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		BaseURL:  strings.TrimRight(getEnv("LEDGER_BASE_URL", ""), "/"),
		APIToken: getEnv("LEDGER_API_TOKEN", ""),

		CacheTTLMinutes: getEnvInt("CACHE_TTL_MINUTES", 10),

		Months:      getEnvInt("MONTHS", 0),
		PeriodStart: getEnv("PERIOD_START", ""),
		PeriodEnd:   getEnv("PERIOD_END", ""),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate ledger API settings
	if c.BaseURL == "" {
		errors = append(errors, "LEDGER_BASE_URL is required")
	} else if parsedURL, err := url.Parse(c.BaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("invalid ledger base URL '%s': %v", c.BaseURL, err))
	} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid ledger base URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
	}
	if c.APIToken == "" {
		errors = append(errors, "LEDGER_API_TOKEN is required")
	}

	// Validate cache TTL
	if c.CacheTTLMinutes <= 0 {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %d: must be a positive number of minutes", c.CacheTTLMinutes))
	}

	// Validate reporting period
	if c.Months < 0 {
		errors = append(errors, fmt.Sprintf("invalid months window %d: must be a positive integer", c.Months))
	}
	if c.PeriodStart != "" {
		if _, err := time.Parse(dateLayout, c.PeriodStart); err != nil {
			errors = append(errors, fmt.Sprintf("invalid period start '%s': must be in YYYY-MM-DD format", c.PeriodStart))
		}
	}
	if c.PeriodEnd != "" {
		if _, err := time.Parse(dateLayout, c.PeriodEnd); err != nil {
			errors = append(errors, fmt.Sprintf("invalid period end '%s': must be in YYYY-MM-DD format", c.PeriodEnd))
		}
	}
	if c.PeriodStart != "" && c.PeriodEnd != "" {
		start, serr := time.Parse(dateLayout, c.PeriodStart)
		end, eerr := time.Parse(dateLayout, c.PeriodEnd)
		if serr == nil && eerr == nil && end.Before(start) {
			errors = append(errors, "period end must not be earlier than period start")
		}
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// CacheTTL returns the snapshot TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// ResolveRange turns the period settings into a concrete date range.
// The end defaults to today. A missing start falls back to a trailing
// Months window ending at the end month, or to January 1st of the end
// year when no window is configured.
func (c *Config) ResolveRange(today time.Time) (core.TimeRange, error) {
	end := core.NewDate(today.Year(), int(today.Month()), today.Day())
	if c.PeriodEnd != "" {
		parsed, err := time.Parse(dateLayout, c.PeriodEnd)
		if err != nil {
			return core.TimeRange{}, fmt.Errorf("parse period end: %w", err)
		}
		end = parsed.UTC()
	}

	var start time.Time
	switch {
	case c.PeriodStart != "":
		parsed, err := time.Parse(dateLayout, c.PeriodStart)
		if err != nil {
			return core.TimeRange{}, fmt.Errorf("parse period start: %w", err)
		}
		start = parsed.UTC()
	case c.Months > 0:
		start = core.MonthStart(end).AddDate(0, -(c.Months - 1), 0)
	default:
		start = core.NewDate(end.Year(), 1, 1)
	}

	rng := core.TimeRange{Start: start, End: end}
	if err := rng.Validate(); err != nil {
		return core.TimeRange{}, err
	}
	return rng, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
