package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog"
)

// anthropicMaxOutputTokens is the completion-length hard cap applied to
// Anthropic requests regardless of the model's context window.
const anthropicMaxOutputTokens = 8192

// AnthropicConfig defines configuration options for the Anthropic client.
type AnthropicConfig struct {
	APIKey  string
	BaseURL string
	Logger  zerolog.Logger
}

// AnthropicClient implements Client against the Anthropic Messages API.
// Responses are consumed as a stream and accumulated into one text block.
type AnthropicClient struct {
	client anthropic.Client
	logger zerolog.Logger
}

// NewAnthropicClient builds a new client using the provided configuration.
func NewAnthropicClient(cfg AnthropicConfig) (*AnthropicClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic api key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &AnthropicClient{
		client: anthropic.NewClient(opts...),
		logger: cfg.Logger.With().Str("component", "anthropic_client").Logger(),
	}, nil
}

// Complete streams one message request and accumulates the event stream
// into a single response with provider-reported usage.
func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.APIName),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(req.Temperature))
	}

	stream := c.client.Messages.NewStreaming(ctx, params)
	message := anthropic.Message{}
	for stream.Next() {
		event := stream.Current()
		if err := message.Accumulate(event); err != nil {
			return CompletionResponse{}, fmt.Errorf("anthropic stream accumulate: %w", err)
		}
	}
	if err := stream.Err(); err != nil {
		return CompletionResponse{}, fmt.Errorf("anthropic completion: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		switch content := block.AsAny().(type) {
		case anthropic.TextBlock:
			text.WriteString(content.Text)
		}
	}

	response := CompletionResponse{
		Text:             strings.TrimSpace(text.String()),
		PromptTokens:     int(message.Usage.InputTokens),
		CompletionTokens: int(message.Usage.OutputTokens),
	}
	if response.Text == "" {
		return CompletionResponse{}, fmt.Errorf("empty response from anthropic api")
	}

	return response, nil
}

// MaxOutputTokens returns the provider hard cap on completion length.
func (c *AnthropicClient) MaxOutputTokens() int {
	return anthropicMaxOutputTokens
}
