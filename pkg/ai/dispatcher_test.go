package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	resp    CompletionResponse
	err     error
	hardCap int
	lastReq CompletionRequest
}

func (s *stubClient) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return CompletionResponse{}, s.err
	}
	return s.resp, nil
}

func (s *stubClient) MaxOutputTokens() int {
	return s.hardCap
}

func newTestDispatcher(cfg DispatcherConfig) *Dispatcher {
	registry := NewRegistry("alpha", testModels())
	calculator := NewCalculator(registry, 100, 1.5, 1)
	cfg.Logger = zerolog.Nop()
	return NewDispatcher(registry, calculator, cfg)
}

func TestDispatcherUnconfiguredProviderFailsClosed(t *testing.T) {
	dispatcher := newTestDispatcher(DispatcherConfig{})

	result := dispatcher.Call(context.Background(), CallOptions{ModelID: "beta", Prompt: "hello there"})
	require.False(t, result.Success)
	require.NotEmpty(t, result.ErrorMessage)
	require.Zero(t, result.CompletionTokens)
	require.Positive(t, result.PromptTokens, "prompt estimate should survive the failure")
}

func TestDispatcherReturnsProviderUsage(t *testing.T) {
	dispatcher := newTestDispatcher(DispatcherConfig{})
	client := &stubClient{resp: CompletionResponse{Text: "a story", PromptTokens: 120, CompletionTokens: 80}}
	dispatcher.RegisterClient(ProviderOpenAI, client)

	result := dispatcher.Call(context.Background(), CallOptions{ModelID: "alpha", Prompt: "write"})
	require.True(t, result.Success)
	require.Equal(t, "a story", result.Text)
	require.Equal(t, 120, result.PromptTokens)
	require.Equal(t, 80, result.CompletionTokens)
	require.Equal(t, 200, result.TotalTokens())
	require.Positive(t, result.MonetaryCost)
}

func TestDispatcherEstimatesWhenUsageAbsent(t *testing.T) {
	dispatcher := newTestDispatcher(DispatcherConfig{})
	client := &stubClient{resp: CompletionResponse{Text: "four words of text"}}
	dispatcher.RegisterClient(ProviderOpenAI, client)

	result := dispatcher.Call(context.Background(), CallOptions{ModelID: "alpha", Prompt: "write something"})
	require.True(t, result.Success)
	require.Positive(t, result.PromptTokens)
	require.Positive(t, result.CompletionTokens)
}

func TestDispatcherBoundsMaxTokensByProviderCap(t *testing.T) {
	dispatcher := newTestDispatcher(DispatcherConfig{MaxOutputTokens: 4096})
	client := &stubClient{resp: CompletionResponse{Text: "ok"}, hardCap: 1024}
	dispatcher.RegisterClient(ProviderOpenAI, client)

	dispatcher.Call(context.Background(), CallOptions{ModelID: "alpha", Prompt: "write"})
	require.Equal(t, 1024, client.lastReq.MaxTokens)
}

func TestDispatcherProviderErrorKeepsPromptEstimate(t *testing.T) {
	dispatcher := newTestDispatcher(DispatcherConfig{})
	client := &stubClient{err: errors.New("rate limited")}
	dispatcher.RegisterClient(ProviderOpenAI, client)

	result := dispatcher.Call(context.Background(), CallOptions{ModelID: "alpha", Prompt: "write a poem about rain"})
	require.False(t, result.Success)
	require.Contains(t, result.ErrorMessage, "rate limited")
	require.Positive(t, result.PromptTokens)
	require.Zero(t, result.CompletionTokens)
}
