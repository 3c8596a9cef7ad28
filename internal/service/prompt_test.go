package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterPromptIncludesContestAndTitle(t *testing.T) {
	prompt := writerPrompt("Dry humor.", "Spring Tales", "Stories about spring.", "First Bloom")

	require.Contains(t, prompt, writerBaseInstruction)
	require.Contains(t, prompt, "Dry humor.")
	require.Contains(t, prompt, "Spring Tales")
	require.Contains(t, prompt, "Stories about spring.")
	require.Contains(t, prompt, "First Bloom")
}

func TestWriterPromptOmitsEmptySections(t *testing.T) {
	prompt := writerPrompt("", "Spring Tales", "", "")

	require.NotContains(t, prompt, "Your personality")
	require.NotContains(t, prompt, "Theme:")
	require.NotContains(t, prompt, "must be titled")
}

func TestJudgePromptListsEntriesByIDOnly(t *testing.T) {
	entries := []PromptEntry{
		{ID: 10, Title: "Falling Leaves", Body: "A story."},
		{ID: 25, Title: "October Rain", Body: "Another story."},
	}
	prompt := judgePrompt("Stern.", "Autumn Tales", "Stories about autumn.", entries)

	require.Contains(t, prompt, judgeBaseInstruction)
	require.Contains(t, prompt, "TEXT #10: Falling Leaves")
	require.Contains(t, prompt, "TEXT #25: October Rain")
	require.Contains(t, prompt, "A story.")
}

func TestJudgePromptSpecifiesOutputFormat(t *testing.T) {
	prompt := judgePrompt("", "Autumn Tales", "", nil)

	require.Contains(t, prompt, "RANKING:")
	require.Contains(t, prompt, "JUSTIFICATIONS:")
}
