// Package config holds the runtime configuration for the server and CLI.
package config

import (
	"fmt"
	"time"
)

// Defaults used when a value is not configured.
const (
	DefaultPort           = 8080
	DefaultDataDir        = "./data"
	DefaultSessionTTL     = 4 * time.Hour
	DefaultMaxUploadBytes = 10 << 20
	DefaultLLMTimeout     = 45 * time.Second
	DefaultGroqModel      = "llama-3.3-70b-versatile"
	DefaultGeminiModel    = "gemini-2.5-flash"
)

// Config is the merged configuration from flags and environment.
type Config struct {
	// Server
	Port    int
	DataDir string

	// Providers. Both keys empty means the server runs in offline mode
	// and only the deterministic analysis is available.
	GroqAPIKey   string
	GroqModel    string
	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration

	// Sessions. DatabaseURL switches the session store from local files
	// to PostgreSQL.
	DatabaseURL string
	SessionTTL  time.Duration

	// Identity. Optional; when set, bearer tokens on incoming requests
	// are verified against this secret.
	JWTSecret string

	// Uploads
	MaxUploadBytes int64

	// Logging
	LogJSON bool
	Debug   bool
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.LLMTimeout <= 0 {
		c.LLMTimeout = DefaultLLMTimeout
	}
	if c.GroqModel == "" {
		c.GroqModel = DefaultGroqModel
	}
	if c.GeminiModel == "" {
		c.GeminiModel = DefaultGeminiModel
	}
}

// Validate checks ranges after Normalize.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("config error: data dir is required")
	}
	if c.SessionTTL < time.Minute {
		return fmt.Errorf("config error: session ttl %s is too short", c.SessionTTL)
	}
	if c.MaxUploadBytes < 1024 {
		return fmt.Errorf("config error: max upload size %d is too small", c.MaxUploadBytes)
	}
	return nil
}

// Offline reports whether no generation provider is configured.
func (c *Config) Offline() bool {
	return c.GroqAPIKey == "" && c.GeminiAPIKey == ""
}
