package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.input))
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", TruncateRunes("abc", 0))
	assert.Equal(t, "abc", TruncateRunes("abc", 10))
	assert.Equal(t, "ab", TruncateRunes("abcd", 2))
	assert.Equal(t, "hél", TruncateRunes("héllo", 3))
}

func TestClassify(t *testing.T) {
	err := classify("p", context.DeadlineExceeded)
	assert.Equal(t, KindTimeout, err.Kind)

	err = classify("p", fmt.Errorf("googleapi: Error 429: quota exceeded"))
	assert.Equal(t, KindRateLimited, err.Kind)

	err = classify("p", errors.New("connection refused"))
	assert.Equal(t, KindUnavailable, err.Kind)

	// Existing ServiceError passes through unchanged.
	orig := &ServiceError{Provider: "p", Kind: KindMalformed}
	assert.Same(t, orig, classify("q", fmt.Errorf("wrapped: %w", orig)))
}

func TestServiceError_Retriable(t *testing.T) {
	assert.True(t, (&ServiceError{Kind: KindRateLimited}).Retriable())
	assert.True(t, (&ServiceError{Kind: KindTimeout}).Retriable())
	assert.True(t, (&ServiceError{Kind: KindUnavailable}).Retriable())
	assert.False(t, (&ServiceError{Kind: KindMalformed}).Retriable())
}
