package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"vadimgribanov.com/holomentor/internal/clients"
	"vadimgribanov.com/holomentor/internal/config"
	"vadimgribanov.com/holomentor/internal/delivery/httpapi"
	"vadimgribanov.com/holomentor/internal/health"
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
	if err := logging.SetupLogger("master"); err != nil {
		os.Exit(1)
	}

	appConfig, err := config.LoadConfig(config.PathFromEnv())
	if err != nil {
		slog.ErrorContext(ctx, "Error loading config", "error", err)
		os.Exit(1)
	}
	masterCfg := appConfig.Master

	coordinator := services.NewCoordinatorService(
		clients.NewMemoryClient(masterCfg.MemoryURL, masterCfg.HTTPTimeout),
		clients.NewAnswerClient(masterCfg.AnswerURL, masterCfg.HTTPTimeout),
	)

	monitor := health.NewMonitor(map[string]string{
		"memory": masterCfg.MemoryURL,
		"answer": masterCfg.AnswerURL,
	}, masterCfg.HTTPTimeout)
	if err := monitor.Start(masterCfg.HealthSchedule); err != nil {
		slog.ErrorContext(ctx, "Error starting health monitor", "error", err)
		os.Exit(1)
	}
	defer monitor.Stop()

	slog.InfoContext(ctx, "Starting master agent", "memory_url", masterCfg.MemoryURL, "answer_url", masterCfg.AnswerURL)
	handler := httpapi.NewMasterHandler(coordinator, monitor)
	if err := server.Run(ctx, masterCfg.Addr, httpapi.NewMasterRouter(handler, masterCfg.CORSOrigins)); err != nil {
		slog.ErrorContext(ctx, "Server error", "error", err)
		os.Exit(1)
	}
}
