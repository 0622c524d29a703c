package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"vadimgribanov.com/holomentor/internal/config"
	"vadimgribanov.com/holomentor/internal/delivery/httpapi"
	"vadimgribanov.com/holomentor/internal/server"
	"vadimgribanov.com/holomentor/internal/services"
	"vadimgribanov.com/holomentor/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		slog.WarnContext(ctx, "Error loading .env file", "error", err)
	}
	if err := logging.SetupLogger("answer"); err != nil {
		os.Exit(1)
	}

	appConfig, err := config.LoadConfig(config.PathFromEnv())
	if err != nil {
		slog.ErrorContext(ctx, "Error loading config", "error", err)
		os.Exit(1)
	}

	llmClientProxy := services.NewClientProxyFromConfig(appConfig)
	answerCfg := appConfig.Answer
	answerService := services.NewAnswerService(llmClientProxy, answerCfg.Model, answerCfg.Temperature, answerCfg.MaxTokens)

	modelCfg, _ := appConfig.ModelConfig()
	provider := modelCfg.Provider
	if answerService.Configured() {
		slog.InfoContext(ctx, "LLM configured", "model", answerCfg.Model, "name", modelCfg.Name, "provider", provider)
	} else {
		slog.WarnContext(ctx, "No LLM credential for model, answering in fallback mode", "model", answerCfg.Model, "models", llmClientProxy.ListModels())
	}

	handler := httpapi.NewAnswerHandler(answerService, provider)
	if err := server.Run(ctx, answerCfg.Addr, httpapi.NewAnswerRouter(handler)); err != nil {
		slog.ErrorContext(ctx, "Server error", "error", err)
		os.Exit(1)
	}
}
