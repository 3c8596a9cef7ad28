package service

import (
	"context"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/relato-ai/relato/internal/models"
	"github.com/relato-ai/relato/internal/repository"
	"github.com/relato-ai/relato/pkg/ai"
)

func setupServiceDB(t *testing.T) (*gorm.DB, repository.Store) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and shared.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Contest{},
		&models.Submission{},
		&models.JudgeProfile{},
		&models.ContestJudge{},
		&models.Vote{},
		&models.Evaluation{},
		&models.WritingRequest{},
		&models.CreditEntry{},
	))
	return db, repository.NewStore(db)
}

type stubCaller struct {
	mu      sync.Mutex
	result  ai.CallResult
	calls   int
	onCall  func()
	results []ai.CallResult
}

func (s *stubCaller) Call(ctx context.Context, opts ai.CallOptions) ai.CallResult {
	s.mu.Lock()
	s.calls++
	call := s.calls
	if s.onCall != nil {
		s.onCall()
	}
	result := s.result
	if len(s.results) > 0 {
		index := call - 1
		if index >= len(s.results) {
			index = len(s.results) - 1
		}
		result = s.results[index]
	}
	s.mu.Unlock()
	return result
}

func (s *stubCaller) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testCalculator() *ai.Calculator {
	registry := ai.NewRegistry("gpt-4o-mini", ai.DefaultModels())
	return ai.NewCalculator(registry, 100, 1.5, 1)
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

type evalFixture struct {
	contest     models.Contest
	judge       models.JudgeProfile
	actor       models.User
	submissions []models.Submission
}

func seedEvaluation(t *testing.T, db *gorm.DB, credits int64) evalFixture {
	t.Helper()

	actor := models.User{Name: "Organizer", Email: "organizer@example.com", Credits: credits}
	require.NoError(t, db.Create(&actor).Error)

	author := models.User{Name: "Secret Author", Email: "secret.author@example.com"}
	require.NoError(t, db.Create(&author).Error)

	contest := models.Contest{Title: "Autumn Tales", Description: "Stories about autumn.", Status: models.ContestStatusJudging}
	require.NoError(t, db.Create(&contest).Error)

	judge := models.JudgeProfile{Name: "Stern Critic", Persona: "Demanding and precise.", OwnerID: actor.ID, DefaultModel: "gpt-4o-mini"}
	require.NoError(t, db.Create(&judge).Error)
	require.NoError(t, db.Create(&models.ContestJudge{ContestID: contest.ID, JudgeProfileID: judge.ID}).Error)

	submissions := []models.Submission{
		{ContestID: contest.ID, AuthorID: author.ID, Title: "Falling Leaves", Body: "A story."},
		{ContestID: contest.ID, AuthorID: author.ID, Title: "October Rain", Body: "Another story."},
		{ContestID: contest.ID, AuthorID: author.ID, Title: "Harvest Moon", Body: "A third story."},
	}
	for i := range submissions {
		require.NoError(t, db.Create(&submissions[i]).Error)
	}

	return evalFixture{contest: contest, judge: judge, actor: actor, submissions: submissions}
}

func newEvaluationService(store repository.Store, caller ModelCaller) EvaluationService {
	logger := zerolog.Nop()
	return NewEvaluationService(store, caller, testCalculator(), NewCreditService(logger), testValidator(), logger)
}

func newWritingService(store repository.Store, caller ModelCaller) WritingService {
	logger := zerolog.Nop()
	return NewWritingService(store, caller, testCalculator(), NewCreditService(logger), testValidator(), logger)
}
