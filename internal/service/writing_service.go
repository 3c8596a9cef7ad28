package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/relato-ai/relato/internal/dto"
	"github.com/relato-ai/relato/internal/models"
	"github.com/relato-ai/relato/internal/repository"
	"github.com/relato-ai/relato/pkg/ai"
)

// ErrContestNotOpen indicates the contest no longer accepts submissions.
var ErrContestNotOpen = errors.New("contest is not open for submissions")

// WritingService runs the AI writer end to end: assemble the prompt,
// dispatch, and persist the submission with its audit row and debit in one
// transaction.
type WritingService interface {
	Generate(ctx context.Context, payload dto.GenerateTextRequest) (dto.GenerateTextResponse, error)
}

// NewWritingService constructs the writing orchestrator.
func NewWritingService(store repository.Store, caller ModelCaller, calculator *ai.Calculator, credits CreditService, validate *validator.Validate, logger zerolog.Logger) WritingService {
	return &writingService{
		store:      store,
		caller:     caller,
		calculator: calculator,
		credits:    credits,
		validator:  validate,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "writing_service").Logger(),
	}
}

type writingService struct {
	store      repository.Store
	caller     ModelCaller
	calculator *ai.Calculator
	credits    CreditService
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
}

func (s *writingService) Generate(ctx context.Context, payload dto.GenerateTextRequest) (dto.GenerateTextResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GenerateTextResponse{}, err
	}

	contest, err := s.store.Contests().GetByID(ctx, payload.ContestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GenerateTextResponse{}, ErrContestNotFound
		}
		return dto.GenerateTextResponse{}, err
	}
	if !contest.AcceptsSubmissions() {
		return dto.GenerateTextResponse{}, ErrContestNotOpen
	}

	if _, err := s.store.Users().GetByID(ctx, payload.WriterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GenerateTextResponse{}, ErrUserNotFound
		}
		return dto.GenerateTextResponse{}, err
	}

	// A writer gets one generated piece per contest; returning the existing
	// submission avoids charging twice for the same text.
	if existing, err := s.store.Submissions().FindGenerated(ctx, payload.ContestID, payload.WriterID); err == nil {
		s.logger.Info().
			Uint("contest_id", payload.ContestID).
			Uint("writer_id", payload.WriterID).
			Uint("submission_id", existing.ID).
			Msg("returning previously generated submission without charge")
		return dto.GenerateTextResponse{
			SubmissionID:     existing.ID,
			Title:            existing.Title,
			Text:             existing.Body,
			AlreadyGenerated: true,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.GenerateTextResponse{}, err
	}

	prompt := writerPrompt(payload.Persona, contest.Title, contest.Description, payload.Title)
	result := s.caller.Call(ctx, ai.CallOptions{
		ModelID:     payload.ModelID,
		Prompt:      prompt,
		Temperature: payload.Temperature,
	})
	if !result.Success {
		return dto.GenerateTextResponse{}, fmt.Errorf("%w: %s", ErrProviderFailure, result.ErrorMessage)
	}

	body := strings.TrimSpace(s.sanitizer.Sanitize(result.Text))

	var response dto.GenerateTextResponse
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		submission := models.Submission{
			ContestID:   payload.ContestID,
			AuthorID:    payload.WriterID,
			Title:       payload.Title,
			Body:        body,
			IsGenerated: true,
		}
		if err := tx.Submissions().Create(ctx, &submission); err != nil {
			return fmt.Errorf("create submission: %w", err)
		}

		request := models.WritingRequest{
			ContestID:        payload.ContestID,
			WriterID:         payload.WriterID,
			SubmissionID:     submission.ID,
			Model:            result.Model,
			Prompt:           prompt,
			ResponseText:     result.Text,
			PromptTokens:     result.PromptTokens,
			CompletionTokens: result.CompletionTokens,
			Cost:             result.MonetaryCost,
		}
		if err := tx.WritingRequests().Create(ctx, &request); err != nil {
			return fmt.Errorf("create writing request: %w", err)
		}

		creditCost := s.calculator.CreditCost(result.MonetaryCost)
		description := fmt.Sprintf("AI writing for contest %d", payload.ContestID)
		if _, err := s.credits.Charge(ctx, tx, payload.WriterID, models.CreditActionWriting, creditCost, result.MonetaryCost, description); err != nil {
			return err
		}

		response = dto.GenerateTextResponse{
			SubmissionID:     submission.ID,
			Title:            submission.Title,
			Text:             submission.Body,
			Model:            result.Model,
			PromptTokens:     result.PromptTokens,
			CompletionTokens: result.CompletionTokens,
			CreditsCharged:   creditCost,
		}
		return nil
	})
	if err != nil {
		return dto.GenerateTextResponse{}, err
	}

	s.logger.Info().
		Uint("contest_id", payload.ContestID).
		Uint("writer_id", payload.WriterID).
		Uint("submission_id", response.SubmissionID).
		Int("credits", response.CreditsCharged).
		Msg("generated submission committed")

	return response, nil
}
