package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Rules: []Rule{
			{Path: "/analyze", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
			{Path: "/sessions/", Method: "GET", Limit: 50, Window: time.Minute, Burst: 5},
		},
	}
}

func TestLimiterEnforcesBurst(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/analyze", "POST")
		require.True(t, allowed, "request %d within burst", i)
	}
	allowed, info := l.Allow("10.0.0.1", "/analyze", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterIsolatesClients(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 2; i++ {
		l.Allow("10.0.0.1", "/analyze", "POST")
	}
	allowed, _ := l.Allow("10.0.0.2", "/analyze", "POST")
	assert.True(t, allowed)
}

func TestLimiterHealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 500; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/analyze", "POST")
		require.True(t, allowed)
	}
}

func TestMatchPrefixAndDefault(t *testing.T) {
	cfg := testConfig()

	rule := cfg.match("/sessions/abc123", "GET")
	assert.Equal(t, 50, rule.Limit)

	rule = cfg.match("/results", "GET")
	assert.Equal(t, cfg.DefaultLimit, rule.Limit)

	// Method must match the rule.
	rule = cfg.match("/analyze", "GET")
	assert.Equal(t, cfg.DefaultLimit, rule.Limit)
}

func TestBucketRefills(t *testing.T) {
	b := newBucket(1, 100) // refills fast enough to observe in a test
	allowed, _, _ := b.take()
	require.True(t, allowed)
	allowed, _, retryAfter := b.take()
	require.False(t, allowed)
	assert.LessOrEqual(t, retryAfter, 20*time.Millisecond)

	time.Sleep(15 * time.Millisecond)
	allowed, _, _ = b.take()
	assert.True(t, allowed)
}

func TestEvictIdle(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("10.0.0.%d", i), "/analyze", "POST")
	}
	l.mu.Lock()
	for key := range l.lastAccess {
		l.lastAccess[key] = time.Now().Add(-time.Hour)
	}
	l.mu.Unlock()

	l.evictIdle(time.Minute)

	l.mu.RLock()
	defer l.mu.RUnlock()
	assert.Empty(t, l.buckets)
}
