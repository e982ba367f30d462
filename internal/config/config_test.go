package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"ledgerview/internal/core"
)

func validConfig() Config {
	return Config{
		Port:            "8081",
		BaseURL:         "https://ledger.example.com",
		APIToken:        "token",
		CacheTTLMinutes: 10,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "valid with explicit period",
			mutate: func(c *Config) { c.PeriodStart = "2024-01-01"; c.PeriodEnd = "2024-06-30" },
		},
		{
			name:        "missing base URL",
			mutate:      func(c *Config) { c.BaseURL = "" },
			wantErr:     true,
			errContains: "LEDGER_BASE_URL",
		},
		{
			name:        "bad URL scheme",
			mutate:      func(c *Config) { c.BaseURL = "ftp://ledger.example.com" },
			wantErr:     true,
			errContains: "scheme",
		},
		{
			name:        "missing token",
			mutate:      func(c *Config) { c.APIToken = "" },
			wantErr:     true,
			errContains: "LEDGER_API_TOKEN",
		},
		{
			name:        "zero cache TTL",
			mutate:      func(c *Config) { c.CacheTTLMinutes = 0 },
			wantErr:     true,
			errContains: "cache TTL",
		},
		{
			name:        "negative months",
			mutate:      func(c *Config) { c.Months = -3 },
			wantErr:     true,
			errContains: "months",
		},
		{
			name:        "malformed period start",
			mutate:      func(c *Config) { c.PeriodStart = "01/02/2024" },
			wantErr:     true,
			errContains: "YYYY-MM-DD",
		},
		{
			name:        "end before start",
			mutate:      func(c *Config) { c.PeriodStart = "2024-06-01"; c.PeriodEnd = "2024-01-01" },
			wantErr:     true,
			errContains: "earlier",
		},
		{
			name:        "invalid port",
			mutate:      func(c *Config) { c.Port = "http" },
			wantErr:     true,
			errContains: "port",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && tc.errContains != "" && !strings.Contains(err.Error(), tc.errContains) {
				t.Errorf("Validate() error %q does not mention %q", err, tc.errContains)
			}
		})
	}
}

func TestConfig_ResolveRange(t *testing.T) {
	today := core.NewDate(2024, 7, 19)

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{
			name:      "defaults to january first through today",
			mutate:    func(c *Config) {},
			wantStart: "2024-01-01",
			wantEnd:   "2024-07-19",
		},
		{
			name:      "trailing months window",
			mutate:    func(c *Config) { c.Months = 6 },
			wantStart: "2024-02-01",
			wantEnd:   "2024-07-19",
		},
		{
			name:      "one month window is the current month",
			mutate:    func(c *Config) { c.Months = 1 },
			wantStart: "2024-07-01",
			wantEnd:   "2024-07-19",
		},
		{
			name:      "window crosses year boundary",
			mutate:    func(c *Config) { c.Months = 12 },
			wantStart: "2023-08-01",
			wantEnd:   "2024-07-19",
		},
		{
			name:      "explicit period wins over window",
			mutate:    func(c *Config) { c.Months = 6; c.PeriodStart = "2024-03-15"; c.PeriodEnd = "2024-04-15" },
			wantStart: "2024-03-15",
			wantEnd:   "2024-04-15",
		},
		{
			name:      "explicit end anchors the window",
			mutate:    func(c *Config) { c.Months = 3; c.PeriodEnd = "2024-05-31" },
			wantStart: "2024-03-01",
			wantEnd:   "2024-05-31",
		},
		{
			name:    "resolved end before start fails",
			mutate:  func(c *Config) { c.PeriodStart = "2024-12-01" },
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			rng, err := cfg.ResolveRange(today)
			if tc.wantErr {
				if err == nil {
					t.Fatal("ResolveRange() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveRange() unexpected error: %v", err)
			}
			if got := rng.Start.Format("2006-01-02"); got != tc.wantStart {
				t.Errorf("start = %s, want %s", got, tc.wantStart)
			}
			if got := rng.End.Format("2006-01-02"); got != tc.wantEnd {
				t.Errorf("end = %s, want %s", got, tc.wantEnd)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "LEDGER_BASE_URL", "LEDGER_API_TOKEN", "CACHE_TTL_MINUTES", "MONTHS", "PERIOD_START", "PERIOD_END"} {
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("Port = %q, want 8081", cfg.Port)
	}
	if cfg.CacheTTLMinutes != 10 {
		t.Errorf("CacheTTLMinutes = %d, want 10", cfg.CacheTTLMinutes)
	}
	if cfg.CacheTTL() != 10*time.Minute {
		t.Errorf("CacheTTL() = %v, want 10m", cfg.CacheTTL())
	}
}

func TestLoad_TrimsTrailingSlash(t *testing.T) {
	t.Setenv("LEDGER_BASE_URL", "https://ledger.example.com/")
	cfg := Load()
	if cfg.BaseURL != "https://ledger.example.com" {
		t.Errorf("BaseURL = %q, want trailing slash removed", cfg.BaseURL)
	}
}
