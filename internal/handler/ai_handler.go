package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/relato-ai/relato/internal/dto"
	"github.com/relato-ai/relato/internal/service"
	"github.com/relato-ai/relato/internal/utils"
)

// AIHandler exposes the AI writer and judge endpoints.
type AIHandler struct {
	writing    service.WritingService
	evaluation service.EvaluationService
	logger     zerolog.Logger
}

// NewAIHandler constructs the handler for AI orchestration routes.
func NewAIHandler(writing service.WritingService, evaluation service.EvaluationService, logger zerolog.Logger) *AIHandler {
	return &AIHandler{
		writing:    writing,
		evaluation: evaluation,
		logger:     logger.With().Str("component", "ai_handler").Logger(),
	}
}

// Register wires the AI routes.
func (h *AIHandler) Register(router fiber.Router) {
	router.Post("/writers/:contestID/generate", h.generate)
	router.Post("/judges/:contestID/evaluate", h.evaluate)
}

func (h *AIHandler) generate(c *fiber.Ctx) error {
	contestID, err := c.ParamsInt("contestID")
	if err != nil || contestID <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid contest id")
	}

	var payload dto.GenerateTextRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload.ContestID = uint(contestID)

	response, err := h.writing.Generate(c.Context(), payload)
	if err != nil {
		return h.sendServiceError(c, err, "failed to generate submission")
	}

	if response.AlreadyGenerated {
		return utils.SendSuccess(c, "submission already generated", response)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission generated", response)
}

func (h *AIHandler) evaluate(c *fiber.Ctx) error {
	contestID, err := c.ParamsInt("contestID")
	if err != nil || contestID <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid contest id")
	}

	var payload dto.RunEvaluationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	payload.ContestID = uint(contestID)

	response, err := h.evaluation.Run(c.Context(), payload)
	if err != nil {
		return h.sendServiceError(c, err, "failed to run evaluation")
	}

	message := "evaluation completed"
	if response.IsReevaluation {
		message = "evaluation replaced"
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, message, response)
}

func (h *AIHandler) sendServiceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	case errors.Is(err, service.ErrContestNotFound),
		errors.Is(err, service.ErrJudgeNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrContestNotOpen),
		errors.Is(err, service.ErrContestNotJudging),
		errors.Is(err, service.ErrJudgeNotAssigned),
		errors.Is(err, service.ErrNoSubmissions):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInsufficientCredits):
		return utils.SendError(c, fiber.StatusPaymentRequired, err.Error())
	case errors.Is(err, service.ErrProviderFailure):
		requestLogger(h.logger, c).Warn().Err(err).Msg("provider call failed")
		return utils.SendError(c, fiber.StatusBadGateway, err.Error())
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
