package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/relato-ai/relato/internal/dto"
	"github.com/relato-ai/relato/internal/handler"
	"github.com/relato-ai/relato/internal/service"
)

type mockWritingService struct {
	lastPayload dto.GenerateTextRequest
	response    dto.GenerateTextResponse
	err         error
}

func (m *mockWritingService) Generate(_ context.Context, req dto.GenerateTextRequest) (dto.GenerateTextResponse, error) {
	m.lastPayload = req
	if m.err != nil {
		return dto.GenerateTextResponse{}, m.err
	}
	return m.response, nil
}

type mockEvaluationService struct {
	lastPayload dto.RunEvaluationRequest
	response    dto.RunEvaluationResponse
	err         error
}

func (m *mockEvaluationService) Run(_ context.Context, req dto.RunEvaluationRequest) (dto.RunEvaluationResponse, error) {
	m.lastPayload = req
	if m.err != nil {
		return dto.RunEvaluationResponse{}, m.err
	}
	return m.response, nil
}

func newAITestApp(writing *mockWritingService, evaluation *mockEvaluationService) *fiber.App {
	logger := zerolog.New(io.Discard)
	app := fiber.New()
	handler.NewAIHandler(writing, evaluation, logger).Register(app.Group("/api/v1/ai"))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func TestAIHandler_GenerateSuccess(t *testing.T) {
	writing := &mockWritingService{response: dto.GenerateTextResponse{
		SubmissionID:   7,
		Title:          "Nocturne",
		Text:           "A quiet tale.",
		Model:          "gpt-4o-mini",
		CreditsCharged: 3,
	}}
	app := newAITestApp(writing, &mockEvaluationService{})

	payload := dto.GenerateTextRequest{WriterID: 5, Title: "Nocturne"}
	resp := postJSON(t, app, "/api/v1/ai/writers/12/generate", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool                     `json:"success"`
		Data    dto.GenerateTextResponse `json:"data"`
		Message string                   `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "submission generated", response.Message)
	require.Equal(t, uint(7), response.Data.SubmissionID)
	require.Equal(t, uint(12), writing.lastPayload.ContestID, "contest id comes from the path")
	require.Equal(t, uint(5), writing.lastPayload.WriterID)
}

func TestAIHandler_GenerateAlreadyGenerated(t *testing.T) {
	writing := &mockWritingService{response: dto.GenerateTextResponse{
		SubmissionID:     7,
		AlreadyGenerated: true,
	}}
	app := newAITestApp(writing, &mockEvaluationService{})

	resp := postJSON(t, app, "/api/v1/ai/writers/12/generate", dto.GenerateTextRequest{WriterID: 5, Title: "Nocturne"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "submission already generated", response.Message)
}

func TestAIHandler_GenerateInvalidContestID(t *testing.T) {
	writing := &mockWritingService{}
	app := newAITestApp(writing, &mockEvaluationService{})

	resp := postJSON(t, app, "/api/v1/ai/writers/abc/generate", dto.GenerateTextRequest{WriterID: 5, Title: "X"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Zero(t, writing.lastPayload.WriterID)
}

func TestAIHandler_EvaluateSuccess(t *testing.T) {
	evaluation := &mockEvaluationService{response: dto.RunEvaluationResponse{
		EvaluationID:   3,
		Rankings:       map[uint]int{10: 1, 25: 2},
		Comments:       map[uint]string{10: "vivid"},
		Model:          "claude-3-5-haiku",
		CreditsCharged: 8,
	}}
	app := newAITestApp(&mockWritingService{}, evaluation)

	payload := dto.RunEvaluationRequest{JudgeProfileID: 2, TriggeredByID: 9}
	resp := postJSON(t, app, "/api/v1/ai/judges/12/evaluate", payload)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Success bool                      `json:"success"`
		Data    dto.RunEvaluationResponse `json:"data"`
		Message string                    `json:"message"`
	}
	decodeResponse(t, resp, &response)

	require.True(t, response.Success)
	require.Equal(t, "evaluation completed", response.Message)
	require.Equal(t, uint(3), response.Data.EvaluationID)
	require.Equal(t, 1, response.Data.Rankings[10])
	require.Equal(t, uint(12), evaluation.lastPayload.ContestID)
}

func TestAIHandler_EvaluateReplacedMessage(t *testing.T) {
	evaluation := &mockEvaluationService{response: dto.RunEvaluationResponse{
		EvaluationID:   4,
		IsReevaluation: true,
	}}
	app := newAITestApp(&mockWritingService{}, evaluation)

	resp := postJSON(t, app, "/api/v1/ai/judges/12/evaluate", dto.RunEvaluationRequest{JudgeProfileID: 2, TriggeredByID: 9})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, "evaluation replaced", response.Message)
}

func TestAIHandler_ServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "contest missing", err: service.ErrContestNotFound, statusCode: fiber.StatusNotFound},
		{name: "judge missing", err: service.ErrJudgeNotFound, statusCode: fiber.StatusNotFound},
		{name: "user missing", err: service.ErrUserNotFound, statusCode: fiber.StatusNotFound},
		{name: "not judging", err: service.ErrContestNotJudging, statusCode: fiber.StatusConflict},
		{name: "unassigned judge", err: service.ErrJudgeNotAssigned, statusCode: fiber.StatusConflict},
		{name: "no submissions", err: service.ErrNoSubmissions, statusCode: fiber.StatusConflict},
		{name: "insufficient credits", err: service.ErrInsufficientCredits, statusCode: fiber.StatusPaymentRequired},
		{name: "provider failure", err: service.ErrProviderFailure, statusCode: fiber.StatusBadGateway},
		{name: "generic", err: errors.New("boom"), statusCode: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			evaluation := &mockEvaluationService{err: tc.err}
			app := newAITestApp(&mockWritingService{}, evaluation)

			resp := postJSON(t, app, "/api/v1/ai/judges/12/evaluate", dto.RunEvaluationRequest{JudgeProfileID: 2, TriggeredByID: 9})
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestAIHandler_GenerateContestNotOpen(t *testing.T) {
	writing := &mockWritingService{err: service.ErrContestNotOpen}
	app := newAITestApp(writing, &mockEvaluationService{})

	resp := postJSON(t, app, "/api/v1/ai/writers/12/generate", dto.GenerateTextRequest{WriterID: 5, Title: "X"})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
