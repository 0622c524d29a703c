package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"vadimgribanov.com/holomentor/internal/config"
	"vadimgribanov.com/holomentor/internal/database"
	"vadimgribanov.com/holomentor/internal/delivery/httpapi"
	"vadimgribanov.com/holomentor/internal/repositories"
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
	if err := logging.SetupLogger("memory"); err != nil {
		os.Exit(1)
	}

	appConfig, err := config.LoadConfig(config.PathFromEnv())
	if err != nil {
		slog.ErrorContext(ctx, "Error loading config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewDB(appConfig.Memory.DatabasePath)
	if err != nil {
		slog.ErrorContext(ctx, "Error initializing database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		slog.ErrorContext(ctx, "Error running database migrations", "error", err)
		os.Exit(1)
	}

	memoryService := services.NewMemoryService(repositories.NewInteractionRepo(db))
	handler := httpapi.NewMemoryHandler(memoryService, appConfig.Memory.DefaultMemoryLimit, appConfig.Memory.DefaultSearchLimit)

	slog.InfoContext(ctx, "Starting memory agent", "database", appConfig.Memory.DatabasePath)
	if err := server.Run(ctx, appConfig.Memory.Addr, httpapi.NewMemoryRouter(handler)); err != nil {
		slog.ErrorContext(ctx, "Server error", "error", err)
		os.Exit(1)
	}
}
