package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/relato-ai/relato/internal/config"
	"github.com/relato-ai/relato/internal/database"
	"github.com/relato-ai/relato/internal/handler"
	"github.com/relato-ai/relato/internal/middleware"
	"github.com/relato-ai/relato/internal/models"
	"github.com/relato-ai/relato/internal/repository"
	"github.com/relato-ai/relato/internal/router"
	"github.com/relato-ai/relato/internal/service"
	"github.com/relato-ai/relato/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Contest{},
		&models.Submission{},
		&models.JudgeProfile{},
		&models.ContestJudge{},
		&models.Vote{},
		&models.Evaluation{},
		&models.WritingRequest{},
		&models.CreditEntry{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	registry := ai.NewRegistry(cfg.DefaultModel, ai.DefaultModels())
	calculator := ai.NewCalculator(registry, cfg.CreditsPerDollar, cfg.CostSafetyMargin, cfg.MinimumCredits)

	dispatcher := ai.NewDispatcher(registry, calculator, ai.DispatcherConfig{
		CallTimeout:     cfg.AITimeout,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Logger:          logger,
	})

	// A provider without credentials stays unregistered; calls for its
	// models come back as failed results instead of startup errors.
	if cfg.OpenAIAPIKey != "" {
		client, err := ai.NewOpenAIClient(ai.OpenAIConfig{APIKey: cfg.OpenAIAPIKey, Logger: logger})
		if err != nil {
			log.Fatalf("failed to create openai client: %v", err)
		}
		dispatcher.RegisterClient(ai.ProviderOpenAI, client)
	} else {
		logger.Warn().Msg("openai api key not configured, openai models disabled")
	}

	if cfg.AnthropicAPIKey != "" {
		client, err := ai.NewAnthropicClient(ai.AnthropicConfig{APIKey: cfg.AnthropicAPIKey, Logger: logger})
		if err != nil {
			log.Fatalf("failed to create anthropic client: %v", err)
		}
		dispatcher.RegisterClient(ai.ProviderAnthropic, client)
	} else {
		logger.Warn().Msg("anthropic api key not configured, anthropic models disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	store := repository.NewStore(db)
	creditService := service.NewCreditService(logger)
	writingService := service.NewWritingService(store, dispatcher, calculator, creditService, validate, logger)
	evaluationService := service.NewEvaluationService(store, dispatcher, calculator, creditService, validate, logger)

	aiHandler := handler.NewAIHandler(writingService, evaluationService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AIHandler: aiHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
