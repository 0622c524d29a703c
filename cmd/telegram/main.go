package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	tele "gopkg.in/telebot.v3"

	"vadimgribanov.com/holomentor/internal/clients"
	"vadimgribanov.com/holomentor/internal/config"
	"vadimgribanov.com/holomentor/internal/delivery/tgbot"
	"vadimgribanov.com/holomentor/internal/middleware"
	"vadimgribanov.com/holomentor/pkg/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		slog.WarnContext(ctx, "Error loading .env file", "error", err)
	}
	if err := logging.SetupLogger("telegram"); err != nil {
		os.Exit(1)
	}

	appConfig, err := config.LoadConfig(config.PathFromEnv())
	if err != nil {
		slog.ErrorContext(ctx, "Error loading config", "error", err)
		os.Exit(1)
	}
	tgCfg := appConfig.Telegram
	if tgCfg.Token == "" {
		slog.ErrorContext(ctx, "TELEGRAM_TOKEN is not set")
		os.Exit(1)
	}

	b, err := tele.NewBot(tele.Settings{
		Token:  tgCfg.Token,
		Poller: &tele.LongPoller{Timeout: tgCfg.PollTimeout},
	})
	if err != nil {
		slog.ErrorContext(ctx, "Error creating bot", "error", err)
		os.Exit(1)
	}

	b.Use(middleware.RequestContext(ctx))
	b.Use(middleware.Logger())
	b.Use(middleware.IdentifyUser())

	if err := b.SetCommands(tgbot.Commands); err != nil {
		slog.ErrorContext(ctx, "Error setting commands", "error", err)
	}

	masterClient := clients.NewMasterClient(tgCfg.MasterURL, appConfig.Master.HTTPTimeout)
	tgbot.RegisterHandlers(b, &middleware.RateLimiter{}, masterClient)

	go func() {
		<-ctx.Done()
		b.Stop()
	}()

	slog.InfoContext(ctx, "Listening...", "master_url", tgCfg.MasterURL)
	b.Start()
}
