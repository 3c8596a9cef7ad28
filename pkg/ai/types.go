package ai

import "context"

// CompletionRequest is the provider-neutral request handed to a client.
// APIName is the provider-facing model name resolved from the registry.
type CompletionRequest struct {
	APIName     string
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// CompletionResponse is the provider-neutral response. Token counts are
// zero when the provider did not report usage; callers fall back to
// estimation in that case.
type CompletionResponse struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// Client is one LLM provider behind the dispatcher. Implementations must
// never leak provider SDK types through this boundary.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)

	// MaxOutputTokens is the provider's hard cap on completion length.
	// The dispatcher bounds every request by it.
	MaxOutputTokens() int
}

// CallResult is the dispatcher's uniform outcome for one model call.
// Expected provider failures land here as Success=false with a descriptive
// ErrorMessage rather than an error; PromptTokens still carries the
// best-effort estimate so callers can account for input the provider may
// have billed before failing.
type CallResult struct {
	Success          bool
	Text             string
	Model            string
	PromptTokens     int
	CompletionTokens int
	MonetaryCost     float64
	ErrorMessage     string
}

// TotalTokens returns the combined prompt and completion token count.
func (r CallResult) TotalTokens() int {
	return r.PromptTokens + r.CompletionTokens
}
