package middleware

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"

	"vadimgribanov.com/holomentor/pkg/logging"
)

const RequestContextKey = "requestContext"

// RequestContext gives every update its own context carrying a fresh request id.
func RequestContext(base context.Context) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(RequestContextKey, newRequestContext(base))
			return next(c)
		}
	}
}

func newRequestContext(base context.Context) context.Context {
	return logging.WithRequestID(base, uuid.New().String())
}

func Logger() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			ctx := ContextFrom(c)

			attrs := []any{"update_id", c.Update().ID}
			if sender := c.Sender(); sender != nil {
				attrs = append(attrs, "tg_user_id", sender.ID)
			}
			if message := c.Message(); message != nil {
				attrs = append(attrs, "text_length", len(message.Text))
			}
			slog.InfoContext(ctx, "User message received", attrs...)
			return next(c)
		}
	}
}

// ContextFrom returns the request context set by RequestContext, or a
// background context if the middleware did not run.
func ContextFrom(c tele.Context) context.Context {
	if ctx, ok := c.Get(RequestContextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}
