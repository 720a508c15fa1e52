package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	defaultGroqModel = "llama-3.3-70b-versatile"
)

// GroqClient implements Generator against Groq's OpenAI-compatible API.
// Groq hosts the LLaMA models and is the first-choice provider.
type GroqClient struct {
	client *openai.Client
	model  string
}

// NewGroqClient creates a Groq-backed generator.
func NewGroqClient(apiKey, model string) (*GroqClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL

	if model == "" {
		model = defaultGroqModel
	}

	return &GroqClient{client: openai.NewClientWithConfig(cfg), model: model}, nil
}

// Name identifies the provider for logging.
func (c *GroqClient) Name() string { return "groq" }

// Generate sends a chat completion request and returns the response text.
func (c *GroqClient) Generate(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	completion := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.2,
		MaxTokens:   2048,
	}
	if req.JSON {
		completion.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, completion)
	if err != nil {
		return "", classifyGroq(err)
	}

	if len(resp.Choices) == 0 {
		return "", &ServiceError{Provider: c.Name(), Kind: KindMalformed,
			Cause: fmt.Errorf("no choices in response")}
	}

	text := resp.Choices[0].Message.Content
	if req.JSON {
		text = CleanJSONBlock(text)
	}
	return text, nil
}

// Close is a no-op; the underlying client holds no persistent connections.
func (c *GroqClient) Close() error { return nil }

// classifyGroq maps go-openai errors onto the ServiceError taxonomy.
func classifyGroq(err error) *ServiceError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		kind := KindUnavailable
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			kind = KindRateLimited
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			kind = KindTimeout
		}
		return &ServiceError{Provider: "groq", Kind: kind, Cause: err}
	}
	return classify("groq", err)
}
