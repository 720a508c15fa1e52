package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultCallTimeout bounds a single generation exchange. Exceeding it is the
// step's failure, never a fatal pipeline error.
const DefaultCallTimeout = 45 * time.Second

// Chain is a Generator that tries each configured provider in order,
// failing over on transport-level errors (timeouts, rate limits,
// unreachability). A malformed response does NOT trigger failover: the model
// answered, so switching providers would change semantics mid-pipeline.
type Chain struct {
	providers   []Generator
	callTimeout time.Duration
	logger      *zap.Logger
}

// NewChain builds a provider chain. At least one provider is required.
func NewChain(logger *zap.Logger, timeout time.Duration, providers ...Generator) (*Chain, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one provider is required")
	}
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{providers: providers, callTimeout: timeout, logger: logger}, nil
}

// Name identifies the chain by its first provider.
func (c *Chain) Name() string {
	return "chain/" + c.providers[0].Name()
}

// Generate tries providers in order until one answers.
func (c *Chain) Generate(ctx context.Context, req Request) (string, error) {
	var lastErr error

	for _, p := range c.providers {
		callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
		text, err := p.Generate(callCtx, req)
		cancel()

		if err == nil {
			return text, nil
		}
		lastErr = err

		var svcErr *ServiceError
		if errors.As(err, &svcErr) && !svcErr.Retriable() {
			// Model answered with garbage; surface it for the caller's
			// own retry policy instead of switching providers.
			return "", err
		}

		c.logger.Warn("generation provider failed, trying next",
			zap.String("provider", p.Name()),
			zap.Error(err))
	}

	return "", lastErr
}

// Close closes every provider in the chain.
func (c *Chain) Close() error {
	var firstErr error
	for _, p := range c.providers {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
