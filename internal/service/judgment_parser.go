package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Judges answer in free text and drift from the requested format; parsing
// is therefore tolerant by design. Malformed fragments degrade to partial
// results with warnings, never to an error.

const (
	maxRankedPlaces  = 4
	maxCommentLength = 1024
)

// ParsedJudgment is one submission's outcome from a judging response. Place
// and Comment are nil/empty when the model did not rank the submission.
type ParsedJudgment struct {
	SubmissionID uint
	Place        *int
	Comment      string
}

var (
	rankingHeaderRe       = regexp.MustCompile(`(?i)\b(ranking|clasificaci[oó]n|classification|resultados?|results?)\b\s*:?`)
	justificationHeaderRe = regexp.MustCompile(`(?i)\b(justifications?|justificaci[oó]n(es)?|comments?|comentarios?)\b\s*:?`)

	// "1. TEXT #10 ..." / "2) #25" / "3: TEXTO #7 - ..."
	rankingLineRe = regexp.MustCompile(`^\s*(\d+)\s*[.:)\-]\s*.*?#\s*(\d+)`)

	// "1. because ..." — justification lines are keyed by place, not id.
	justificationLineRe = regexp.MustCompile(`^\s*(\d+)\s*[.:)\-]\s*(.+)$`)
)

// parseJudgment extracts ranked place/comment tuples from a judging
// response. The result always has exactly one entry per submission id, in
// the order given; unranked submissions get a nil place and empty comment.
func parseJudgment(text string, submissionIDs []uint, logger zerolog.Logger) []ParsedJudgment {
	inScope := make(map[uint]bool, len(submissionIDs))
	for _, id := range submissionIDs {
		inScope[id] = true
	}

	rankingSection := sectionAfter(text, rankingHeaderRe)
	if rankingSection == "" {
		// Degraded mode: no recognisable header, scan the whole response.
		logger.Warn().Msg("no ranking header found in judge response, scanning full text")
		rankingSection = text
	}

	placeToSubmission := make(map[int]uint)
	submissionToPlace := make(map[uint]int)
	for _, line := range strings.Split(rankingSection, "\n") {
		match := rankingLineRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		place, err := strconv.Atoi(match[1])
		if err != nil || place < 1 || place > maxRankedPlaces {
			logger.Warn().Str("line", strings.TrimSpace(line)).Msg("discarding ranking line with invalid place")
			continue
		}
		id64, err := strconv.ParseUint(match[2], 10, 32)
		if err != nil {
			logger.Warn().Str("line", strings.TrimSpace(line)).Msg("discarding ranking line with invalid submission id")
			continue
		}
		submissionID := uint(id64)
		if !inScope[submissionID] {
			logger.Warn().Uint("submission_id", submissionID).Msg("discarding ranking for submission outside the evaluated set")
			continue
		}

		// First assignment wins for both the place and the submission.
		if _, taken := placeToSubmission[place]; taken {
			logger.Warn().Int("place", place).Msg("place claimed twice, keeping first claim")
			continue
		}
		if _, ranked := submissionToPlace[submissionID]; ranked {
			logger.Warn().Uint("submission_id", submissionID).Msg("submission ranked twice, keeping first occurrence")
			continue
		}
		placeToSubmission[place] = submissionID
		submissionToPlace[submissionID] = place
	}

	comments := parseJustifications(text, placeToSubmission)

	results := make([]ParsedJudgment, 0, len(submissionIDs))
	for _, id := range submissionIDs {
		judgment := ParsedJudgment{SubmissionID: id}
		if place, ok := submissionToPlace[id]; ok {
			p := place
			judgment.Place = &p
			judgment.Comment = comments[id]
		}
		results = append(results, judgment)
	}
	return results
}

// parseJustifications associates justification lines to places and resolves
// them to submissions through the ranking map.
func parseJustifications(text string, placeToSubmission map[int]uint) map[uint]string {
	comments := make(map[uint]string)
	section := sectionAfter(text, justificationHeaderRe)
	if section == "" {
		return comments
	}

	for _, line := range strings.Split(section, "\n") {
		match := justificationLineRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		place, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		submissionID, ok := placeToSubmission[place]
		if !ok {
			continue
		}
		if _, exists := comments[submissionID]; exists {
			continue
		}
		comments[submissionID] = truncateComment(strings.TrimSpace(match[2]))
	}
	return comments
}

// sectionAfter returns the text following the first header match, cut at
// the next recognised header so sections do not bleed into each other.
func sectionAfter(text string, header *regexp.Regexp) string {
	loc := header.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	section := text[loc[1]:]

	for _, other := range []*regexp.Regexp{rankingHeaderRe, justificationHeaderRe} {
		if other == header {
			continue
		}
		if next := other.FindStringIndex(section); next != nil {
			section = section[:next[0]]
		}
	}
	return section
}

func truncateComment(comment string) string {
	if len(comment) <= maxCommentLength {
		return comment
	}
	return comment[:maxCommentLength]
}
