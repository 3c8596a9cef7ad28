package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountTokensEmptyText(t *testing.T) {
	require.Zero(t, CountTokens("", ModelConfig{Provider: ProviderOpenAI}))
}

func TestCountTokensUsesProviderRatio(t *testing.T) {
	text := strings.Repeat("a", 400)

	require.Equal(t, 100, CountTokens(text, ModelConfig{Provider: ProviderOpenAI}))
	require.Equal(t, 105, CountTokens(text, ModelConfig{Provider: ProviderAnthropic}))
}

func TestCountTokensFallsBackToWordsForUnknownProvider(t *testing.T) {
	tokens := CountTokens("one two three four five six seven eight", ModelConfig{Provider: "mystery"})
	require.Equal(t, 6, tokens, "8 words * 0.75 tokens per word")
}

func TestCountTokensNeverZeroForNonEmptyText(t *testing.T) {
	for _, provider := range []string{ProviderOpenAI, ProviderAnthropic, "mystery", ""} {
		tokens := CountTokens("x", ModelConfig{Provider: provider})
		require.GreaterOrEqual(t, tokens, 0)
		require.NotZero(t, tokens, "provider %q", provider)
	}
}
