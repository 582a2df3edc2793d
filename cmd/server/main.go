package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	httpadapter "career-reimagined/internal/adapter/http"
	"career-reimagined/internal/export"
	"career-reimagined/internal/usecase"
	"career-reimagined/pkg/ai"
	infra "career-reimagined/pkg/infrastructure"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		bootLogger := infra.NewLogger("development")
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	aiClient, err := ai.NewClient(ctx, ai.Options{
		APIKey:     cfg.GeminiAPIKey,
		TextModel:  cfg.TextModel,
		ImageModel: cfg.ImageModel,
		Logger:     logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("gemini client setup failed")
	}

	renderer := infra.NewChromedpRenderer(cfg.ChromePath)
	exporter := export.NewExporter(renderer, renderer, logger)
	session := usecase.NewSession(aiClient, logger)

	app := fiber.New(fiber.Config{
		// Uploads are rejected by the session at 5 MiB; the transport limit
		// just needs to be above that so our own message reaches the user.
		BodyLimit: 10 * 1024 * 1024,
	})

	h := httpadapter.NewHandler(session, exporter, logger)
	h.Register(app)

	logger.Info().Str("port", cfg.Port).Msg("server listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
