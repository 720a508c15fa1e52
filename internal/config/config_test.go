package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	var cfg Config
	cfg.Normalize()

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.MaxUploadBytes)
	assert.Equal(t, DefaultGroqModel, cfg.GroqModel)
	assert.Equal(t, DefaultGeminiModel, cfg.GeminiModel)
	require.NoError(t, cfg.Validate())
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := Config{Port: 9000, DataDir: "/var/lib/app", SessionTTL: time.Hour}
	cfg.Normalize()

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/var/lib/app", cfg.DataDir)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Config{Port: 70000}
	cfg.Normalize()
	assert.Error(t, cfg.Validate())

	cfg = Config{Port: 8080, SessionTTL: time.Second}
	cfg.DataDir = "./data"
	cfg.MaxUploadBytes = DefaultMaxUploadBytes
	cfg.LLMTimeout = DefaultLLMTimeout
	assert.Error(t, cfg.Validate())
}

func TestOffline(t *testing.T) {
	assert.True(t, (&Config{}).Offline())
	assert.False(t, (&Config{GroqAPIKey: "k"}).Offline())
	assert.False(t, (&Config{GeminiAPIKey: "k"}).Offline())
}
