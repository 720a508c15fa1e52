package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is the limit for one endpoint. Paths ending in "/" prefix-match.
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds the limiter configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Rules           []Rule
}

// DefaultConfig returns the built-in limits. Generation endpoints spend API
// quota and get hourly budgets; everything else shares a per-minute default.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    120,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Rules: []Rule{
			{Path: "/analyze", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
			{Path: "/generate-cover-letter", Method: "POST", Limit: 15, Window: time.Hour, Burst: 3},
			{Path: "/generate-resume-questions", Method: "GET", Limit: 15, Window: time.Hour, Burst: 3},
			{Path: "/download-report", Method: "GET", Limit: 20, Window: time.Hour, Burst: 5},
			{Path: "/download-cover-letter", Method: "GET", Limit: 20, Window: time.Hour, Burst: 5},
			{Path: "/submit-feedback", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		},
	}
}

// LoadConfig reads overrides from the environment on top of the defaults.
func LoadConfig() *Config {
	cfg := DefaultConfig()
	cfg.Enabled = envBool("RATE_LIMIT_ENABLED", cfg.Enabled)
	cfg.DefaultLimit = envInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = envDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = envDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	return cfg
}

// match finds the rule for a request. The health check is always unlimited;
// unmatched endpoints fall back to the default limit.
func (c *Config) match(path, method string) Rule {
	if path == "/health" && method == "GET" {
		return Rule{Path: path, Method: method, Limit: 0}
	}
	for _, rule := range c.Rules {
		if rule.Method != method {
			continue
		}
		if rule.Path == path {
			return rule
		}
		if strings.HasSuffix(rule.Path, "/") && strings.HasPrefix(path, rule.Path) {
			return rule
		}
	}
	return Rule{
		Path:   path,
		Method: method,
		Limit:  c.DefaultLimit,
		Window: c.DefaultWindow,
		Burst:  c.DefaultLimit,
	}
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
