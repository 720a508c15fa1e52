package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenerator returns queued responses/errors in order.
type fakeGenerator struct {
	name      string
	responses []string
	errs      []error
	calls     int
}

func (f *fakeGenerator) Generate(_ context.Context, _ Request) (string, error) {
	i := f.calls
	f.calls++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", &ServiceError{Provider: f.name, Kind: KindUnavailable}
}

func (f *fakeGenerator) Name() string { return f.name }
func (f *fakeGenerator) Close() error { return nil }

func TestChain_FirstProviderWins(t *testing.T) {
	primary := &fakeGenerator{name: "primary", responses: []string{"ok"}}
	secondary := &fakeGenerator{name: "secondary", responses: []string{"never"}}

	chain, err := NewChain(nil, time.Second, primary, secondary)
	require.NoError(t, err)

	text, err := chain.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, 0, secondary.calls)
}

func TestChain_FailsOverOnTransportError(t *testing.T) {
	primary := &fakeGenerator{
		name: "primary",
		errs: []error{&ServiceError{Provider: "primary", Kind: KindRateLimited}},
	}
	secondary := &fakeGenerator{name: "secondary", responses: []string{"fallback"}}

	chain, err := NewChain(nil, time.Second, primary, secondary)
	require.NoError(t, err)

	text, err := chain.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "fallback", text)
}

func TestChain_MalformedDoesNotFailOver(t *testing.T) {
	primary := &fakeGenerator{
		name: "primary",
		errs: []error{&ServiceError{Provider: "primary", Kind: KindMalformed}},
	}
	secondary := &fakeGenerator{name: "secondary", responses: []string{"fallback"}}

	chain, err := NewChain(nil, time.Second, primary, secondary)
	require.NoError(t, err)

	_, err = chain.Generate(context.Background(), Request{Prompt: "hi"})
	require.Error(t, err)
	assert.Equal(t, 0, secondary.calls)
}

func TestChain_AllProvidersDown(t *testing.T) {
	primary := &fakeGenerator{
		name: "primary",
		errs: []error{&ServiceError{Provider: "primary", Kind: KindUnavailable}},
	}
	secondary := &fakeGenerator{
		name: "secondary",
		errs: []error{&ServiceError{Provider: "secondary", Kind: KindTimeout}},
	}

	chain, err := NewChain(nil, time.Second, primary, secondary)
	require.NoError(t, err)

	_, err = chain.Generate(context.Background(), Request{Prompt: "hi"})
	require.Error(t, err)

	svcErr := &ServiceError{}
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, KindTimeout, svcErr.Kind)
}

func TestNewChain_RequiresProvider(t *testing.T) {
	_, err := NewChain(nil, time.Second)
	assert.Error(t, err)
}
