package ai

import "strings"

// Token estimation is heuristic for every provider, including Anthropic;
// provider-reported usage always takes precedence when present, so these
// values only steer pre-call estimates and failed or usage-less responses.
const (
	openAICharsPerToken    = 4.0
	anthropicCharsPerToken = 3.8
	tokensPerWord          = 0.75
)

// CountTokens estimates the token count of text for the given model config.
// Strategy chain: a provider-tuned character-ratio estimate, then a generic
// word-based estimate, then len(text)/4 as the last resort. It never fails
// and never returns a negative count.
func CountTokens(text string, model ModelConfig) int {
	if text == "" {
		return 0
	}

	if tokens := providerEstimate(text, model.Provider); tokens > 0 {
		return tokens
	}
	if tokens := wordEstimate(text); tokens > 0 {
		return tokens
	}
	return len(text) / 4
}

func providerEstimate(text, provider string) int {
	var charsPerToken float64
	switch provider {
	case ProviderOpenAI:
		charsPerToken = openAICharsPerToken
	case ProviderAnthropic:
		charsPerToken = anthropicCharsPerToken
	default:
		return 0
	}

	tokens := int(float64(len(text)) / charsPerToken)
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}

func wordEstimate(text string) int {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}
	tokens := int(float64(len(words)) * tokensPerWord)
	if tokens == 0 {
		tokens = 1
	}
	return tokens
}
