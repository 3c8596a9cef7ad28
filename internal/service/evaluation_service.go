package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/relato-ai/relato/internal/dto"
	"github.com/relato-ai/relato/internal/models"
	"github.com/relato-ai/relato/internal/repository"
	"github.com/relato-ai/relato/pkg/ai"
)

// ErrContestNotFound indicates the contest cannot be located.
var ErrContestNotFound = errors.New("contest not found")

// ErrJudgeNotFound indicates the judge profile cannot be located.
var ErrJudgeNotFound = errors.New("judge profile not found")

// ErrJudgeNotAssigned indicates the judge profile is not assigned to the contest.
var ErrJudgeNotAssigned = errors.New("judge is not assigned to this contest")

// ErrUserNotFound indicates the triggering or writing user cannot be located.
var ErrUserNotFound = errors.New("user not found")

// ErrNoSubmissions indicates the contest has nothing to evaluate.
var ErrNoSubmissions = errors.New("contest has no submissions")

// ErrContestNotJudging indicates the contest is not in the judging state.
var ErrContestNotJudging = errors.New("contest is not open for judging")

// ErrProviderFailure indicates the model call failed; nothing was persisted
// and nothing was charged.
var ErrProviderFailure = errors.New("ai provider call failed")

// ModelCaller is the dispatcher surface the orchestrators consume.
type ModelCaller interface {
	Call(ctx context.Context, opts ai.CallOptions) ai.CallResult
}

// EvaluationService runs AI judge evaluations end to end: fetch, prompt,
// dispatch, parse, replace previous results and persist the audit trail.
type EvaluationService interface {
	Run(ctx context.Context, payload dto.RunEvaluationRequest) (dto.RunEvaluationResponse, error)
}

// NewEvaluationService constructs the evaluation orchestrator.
func NewEvaluationService(store repository.Store, caller ModelCaller, calculator *ai.Calculator, credits CreditService, validate *validator.Validate, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		store:      store,
		caller:     caller,
		calculator: calculator,
		credits:    credits,
		validator:  validate,
		logger:     logger.With().Str("component", "evaluation_service").Logger(),
		slots:      newKeyedMutex(),
	}
}

type evaluationService struct {
	store      repository.Store
	caller     ModelCaller
	calculator *ai.Calculator
	credits    CreditService
	validator  *validator.Validate
	logger     zerolog.Logger

	// slots serialises evaluation runs per (contest, actor) so the
	// delete-then-insert replacement cannot interleave.
	slots *keyedMutex
}

func (s *evaluationService) Run(ctx context.Context, payload dto.RunEvaluationRequest) (dto.RunEvaluationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.RunEvaluationResponse{}, err
	}

	release := s.slots.Lock(fmt.Sprintf("%d:%d", payload.ContestID, payload.TriggeredByID))
	defer release()

	contest, judge, submissions, err := s.fetch(ctx, payload)
	if err != nil {
		return dto.RunEvaluationResponse{}, err
	}

	entries := make([]PromptEntry, 0, len(submissions))
	ids := make([]uint, 0, len(submissions))
	for _, submission := range submissions {
		entries = append(entries, PromptEntry{ID: submission.ID, Title: submission.Title, Body: submission.Body})
		ids = append(ids, submission.ID)
	}
	prompt := judgePrompt(judge.Persona, contest.Title, contest.Description, entries)

	modelID := payload.ModelID
	if modelID == "" {
		modelID = judge.DefaultModel
	}

	var response dto.RunEvaluationResponse
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		// The delete for a re-run stays inside this transaction: a failure
		// further down rolls it back, so the previous evaluation survives
		// any failed replacement attempt.
		isReevaluation, err := s.deletePrevious(ctx, tx, payload.ContestID, payload.TriggeredByID)
		if err != nil {
			return err
		}

		result := s.caller.Call(ctx, ai.CallOptions{
			ModelID:     modelID,
			Prompt:      prompt,
			Temperature: payload.Temperature,
		})
		if !result.Success {
			return fmt.Errorf("%w: %s", ErrProviderFailure, result.ErrorMessage)
		}

		judgments := parseJudgment(result.Text, ids, s.logger)

		evaluation := models.Evaluation{
			ContestID:        payload.ContestID,
			JudgeProfileID:   judge.ID,
			TriggeredByID:    payload.TriggeredByID,
			Model:            result.Model,
			Prompt:           prompt,
			ResponseText:     result.Text,
			PromptTokens:     result.PromptTokens,
			CompletionTokens: result.CompletionTokens,
			Cost:             result.MonetaryCost,
			Raw: datatypes.JSONMap{
				"prompt_tokens":     result.PromptTokens,
				"completion_tokens": result.CompletionTokens,
				"is_reevaluation":   isReevaluation,
			},
		}
		if err := tx.Evaluations().Create(ctx, &evaluation); err != nil {
			return fmt.Errorf("create evaluation: %w", err)
		}

		votes := make([]models.Vote, 0, len(judgments))
		for _, judgment := range judgments {
			votes = append(votes, models.Vote{
				ContestID:      payload.ContestID,
				JudgeProfileID: judge.ID,
				SubmissionID:   judgment.SubmissionID,
				Place:          judgment.Place,
				Comment:        judgment.Comment,
			})
		}
		if err := tx.Votes().CreateAll(ctx, votes); err != nil {
			return fmt.Errorf("create votes: %w", err)
		}

		// Credits are computed from the dispatcher's actual usage, never
		// from a pre-call estimate.
		creditCost := s.calculator.CreditCost(result.MonetaryCost)
		description := fmt.Sprintf("AI evaluation of contest %d by judge %q", payload.ContestID, judge.Name)
		if _, err := s.credits.Charge(ctx, tx, payload.TriggeredByID, models.CreditActionEvaluation, creditCost, result.MonetaryCost, description); err != nil {
			return err
		}

		response = dto.RunEvaluationResponse{
			EvaluationID:     evaluation.ID,
			IsReevaluation:   isReevaluation,
			Rankings:         make(map[uint]int),
			Comments:         make(map[uint]string),
			Model:            result.Model,
			PromptTokens:     result.PromptTokens,
			CompletionTokens: result.CompletionTokens,
			CreditsCharged:   creditCost,
			Cost:             result.MonetaryCost,
		}
		for _, judgment := range judgments {
			if judgment.Place != nil {
				response.Rankings[judgment.SubmissionID] = *judgment.Place
			}
			if judgment.Comment != "" {
				response.Comments[judgment.SubmissionID] = judgment.Comment
			}
		}
		return nil
	})
	if err != nil {
		return dto.RunEvaluationResponse{}, err
	}

	s.logger.Info().
		Uint("contest_id", payload.ContestID).
		Uint("judge_profile_id", judge.ID).
		Uint("evaluation_id", response.EvaluationID).
		Bool("is_reevaluation", response.IsReevaluation).
		Int("ranked", len(response.Rankings)).
		Msg("evaluation committed")

	return response, nil
}

// fetch loads and checks everything the run needs. It fails closed: any
// missing piece terminates the run before side effects or charges.
func (s *evaluationService) fetch(ctx context.Context, payload dto.RunEvaluationRequest) (models.Contest, models.JudgeProfile, []models.Submission, error) {
	contest, err := s.store.Contests().GetByID(ctx, payload.ContestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contest{}, models.JudgeProfile{}, nil, ErrContestNotFound
		}
		return models.Contest{}, models.JudgeProfile{}, nil, err
	}
	if contest.Status != models.ContestStatusJudging {
		return models.Contest{}, models.JudgeProfile{}, nil, ErrContestNotJudging
	}

	judge, err := s.store.Judges().GetProfile(ctx, payload.JudgeProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contest{}, models.JudgeProfile{}, nil, ErrJudgeNotFound
		}
		return models.Contest{}, models.JudgeProfile{}, nil, err
	}

	if _, err := s.store.Judges().GetAssignment(ctx, payload.ContestID, payload.JudgeProfileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contest{}, models.JudgeProfile{}, nil, ErrJudgeNotAssigned
		}
		return models.Contest{}, models.JudgeProfile{}, nil, err
	}

	if _, err := s.store.Users().GetByID(ctx, payload.TriggeredByID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contest{}, models.JudgeProfile{}, nil, ErrUserNotFound
		}
		return models.Contest{}, models.JudgeProfile{}, nil, err
	}

	submissions, err := s.store.Submissions().ListByContest(ctx, payload.ContestID)
	if err != nil {
		return models.Contest{}, models.JudgeProfile{}, nil, err
	}
	if len(submissions) == 0 {
		return models.Contest{}, models.JudgeProfile{}, nil, ErrNoSubmissions
	}

	return contest, judge, submissions, nil
}

// deletePrevious removes the prior evaluation and its votes for the same
// (contest, actor) pair, if any. It runs inside the replacement transaction.
func (s *evaluationService) deletePrevious(ctx context.Context, tx repository.Store, contestID, actorID uint) (bool, error) {
	previous, err := tx.Evaluations().FindByContestAndActor(ctx, contestID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := tx.Votes().DeleteByContestAndJudge(ctx, contestID, previous.JudgeProfileID); err != nil {
		return false, fmt.Errorf("delete previous votes: %w", err)
	}
	if err := tx.Evaluations().DeleteByID(ctx, previous.ID); err != nil {
		return false, fmt.Errorf("delete previous evaluation: %w", err)
	}

	s.logger.Info().
		Uint("contest_id", contestID).
		Uint("actor_id", actorID).
		Uint("previous_evaluation_id", previous.ID).
		Msg("replacing previous evaluation")

	return true, nil
}
