package service

import (
	"fmt"
	"strings"
)

// PromptEntry is one anonymized submission excerpt included in a judging
// prompt. It intentionally has no author field: judges must never see who
// wrote an entry.
type PromptEntry struct {
	ID    uint
	Title string
	Body  string
}

const writerBaseInstruction = `You are a creative writer taking part in a writing contest. ` +
	`Write an original piece that fits the contest theme. ` +
	`Respond with the text of the piece only: no preamble, no explanations, no markdown fences.`

const judgeBaseInstruction = `You are a judge in a writing contest. Read every entry and rank the best ones.

Respond using exactly this format:

RANKING:
1. TEXT #<id>
2. TEXT #<id>
3. TEXT #<id>
4. TEXT #<id>

JUSTIFICATIONS:
1. <why the first place deserves it>
2. <why the second place deserves it>
3. <why the third place deserves it>
4. <why the fourth place deserves it>

Use the numeric id shown next to each entry. Rank at most four entries.`

// writerPrompt renders the system/user prompt pair for the AI writer as a
// single prompt string.
func writerPrompt(persona, contestTitle, contestDescription, requestedTitle string) string {
	var b strings.Builder
	b.WriteString(writerBaseInstruction)
	b.WriteString("\n\n")
	if persona != "" {
		b.WriteString("Your personality:\n")
		b.WriteString(persona)
		b.WriteString("\n\n")
	}
	b.WriteString("Contest: ")
	b.WriteString(contestTitle)
	b.WriteString("\n")
	if contestDescription != "" {
		b.WriteString("Theme:\n")
		b.WriteString(contestDescription)
		b.WriteString("\n")
	}
	if requestedTitle != "" {
		b.WriteString("\nThe piece must be titled: ")
		b.WriteString(requestedTitle)
		b.WriteString("\n")
	}
	return b.String()
}

// judgePrompt renders the judging prompt. Entries carry id, title and body
// only; no author or owner identifier may ever appear here.
func judgePrompt(persona, contestTitle, contestDescription string, entries []PromptEntry) string {
	var b strings.Builder
	b.WriteString(judgeBaseInstruction)
	b.WriteString("\n\n")
	if persona != "" {
		b.WriteString("Your personality as a judge:\n")
		b.WriteString(persona)
		b.WriteString("\n\n")
	}
	b.WriteString("Contest: ")
	b.WriteString(contestTitle)
	b.WriteString("\n")
	if contestDescription != "" {
		b.WriteString("Theme:\n")
		b.WriteString(contestDescription)
		b.WriteString("\n")
	}
	b.WriteString("\nEntries:\n")
	for _, entry := range entries {
		fmt.Fprintf(&b, "\nTEXT #%d: %s\n%s\n", entry.ID, entry.Title, entry.Body)
	}
	return b.String()
}
