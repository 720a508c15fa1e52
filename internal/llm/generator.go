// Package llm provides the text-generation client abstractions and the
// concrete providers used by the analysis pipeline and asset generators.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Request describes one generation exchange.
type Request struct {
	// Prompt is the user-facing prompt body.
	Prompt string
	// System is an optional system instruction.
	System string
	// JSON hints the provider to return a raw JSON document.
	JSON bool
}

// Generator is an abstraction over text-generation providers.
type Generator interface {
	// Generate sends the request and returns the textual response.
	Generate(ctx context.Context, req Request) (string, error)
	// Name identifies the provider for logging.
	Name() string
	// Close releases any resources held by the provider.
	Close() error
}

// ErrorKind classifies a provider failure.
type ErrorKind string

const (
	// KindRateLimited means the provider rejected the call for quota reasons.
	KindRateLimited ErrorKind = "rate_limited"
	// KindTimeout means the call exceeded its deadline.
	KindTimeout ErrorKind = "timeout"
	// KindMalformed means the provider answered but the payload was unusable.
	KindMalformed ErrorKind = "malformed"
	// KindUnavailable means the provider could not be reached at all.
	KindUnavailable ErrorKind = "unavailable"
)

// ServiceError is the classified failure returned by every provider.
type ServiceError struct {
	Provider string
	Kind     ErrorKind
	Cause    error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Retriable reports whether failing over to another provider makes sense.
// A malformed payload is the model's fault, not the transport's, so the
// same prompt is retried in place instead of switching providers.
func (e *ServiceError) Retriable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindTimeout || e.Kind == KindUnavailable
}

// classify wraps err as a ServiceError, inferring the kind from the error
// chain and message when the provider SDK does not expose structured codes.
func classify(provider string, err error) *ServiceError {
	if err == nil {
		return nil
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}

	kind := KindUnavailable
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
	case isRateLimitMessage(err.Error()):
		kind = KindRateLimited
	}
	return &ServiceError{Provider: provider, Kind: kind, Cause: err}
}

func isRateLimitMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "429")
}

// CleanJSONBlock removes markdown code fences that models habitually wrap
// around JSON output.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// TruncateRunes deterministically bounds text before it is inserted into a
// prompt, so the provider never silently truncates for us.
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
