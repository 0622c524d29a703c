package tgbot

import (
	"context"
	"log/slog"

	tele "gopkg.in/telebot.v3"

	"vadimgribanov.com/holomentor/internal/middleware"
	"vadimgribanov.com/holomentor/internal/models"
	"vadimgribanov.com/holomentor/internal/telegram_utils"
)

const (
	StartReply   = "Hello! I'm HoloMentor. Ask me anything and I'll remember our conversations."
	OfflineReply = "Sorry, I'm offline or backend is unreachable."
)

type Coordinator interface {
	Process(ctx context.Context, message, userID string) (models.ProcessResult, error)
}

var Commands = []tele.Command{
	{Text: "/start", Description: "Introduce the bot"},
}

func RegisterHandlers(bot *tele.Bot, rateLimiter *middleware.RateLimiter, coordinator Coordinator) {
	handler := NewBotHandler(coordinator)

	bot.Handle("/start", func(c tele.Context) error {
		return c.Send(StartReply)
	})

	protected := bot.Group()
	protected.Use(rateLimiter.Middleware())
	protected.Handle(tele.OnText, handler.HandleText)
}

type BotHandler struct {
	coordinator Coordinator
}

func NewBotHandler(coordinator Coordinator) *BotHandler {
	return &BotHandler{coordinator: coordinator}
}

// HandleText forwards the message to the coordinator under the sender's name.
func (h *BotHandler) HandleText(c tele.Context) error {
	ctx := middleware.ContextFrom(c)
	userID, _ := c.Get(middleware.UserIDKey).(string)
	slog.DebugContext(ctx, "Got text message", "user_id", userID)

	if err := c.Notify(tele.Typing); err != nil {
		slog.WarnContext(ctx, "Error sending typing action", "error", err)
	}

	result, err := h.coordinator.Process(ctx, c.Text(), userID)
	if err != nil {
		slog.ErrorContext(ctx, "Error contacting master agent", "error", err)
		return c.Reply(OfflineReply)
	}

	return telegram_utils.ReplyMarkdown(ctx, c, result.Answer)
}
