package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/bananabread/internal/config"
	"github.com/vbonduro/bananabread/internal/gemini"
	"github.com/vbonduro/bananabread/internal/gemini/rest"
	"github.com/vbonduro/bananabread/internal/gemini/sdk"
	"github.com/vbonduro/bananabread/internal/logging"
	"github.com/vbonduro/bananabread/internal/web"
)

func main() {
	cfg := config.LoadProxy()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator := newGenerator(cfg, logger)
	if !generator.Available() {
		logger.Warn("GEMINI_API_KEY is not set; /api/gemini will answer 500 until it is")
	}

	server := web.NewServer(generator, web.DefaultAllowedOrigins, logger)
	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
	}
}

func newGenerator(cfg *config.Proxy, logger *slog.Logger) gemini.Generator {
	switch cfg.GeminiBackend {
	case "sdk":
		logger.Info("using Gemini SDK backend", "model", cfg.GeminiModel)
		return sdk.NewGenerator(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	default:
		logger.Info("using Gemini REST backend", "model", cfg.GeminiModel)
		return rest.NewGenerator(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	}
}
