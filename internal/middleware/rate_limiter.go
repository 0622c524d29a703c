package middleware

import (
	tele "gopkg.in/telebot.v3"

	"vadimgribanov.com/holomentor/internal/utils"
)

const BusyReply = "Please wait for the response from the bot."

// RateLimiter allows one in-flight message per user; later ones are turned
// away instead of queued.
type RateLimiter struct {
	locks utils.KeyedLock
}

func (r *RateLimiter) Middleware() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			userID, _ := c.Get(UserIDKey).(string)
			unlock, ok := r.locks.TryLock(userID)
			if !ok {
				return c.Send(BusyReply)
			}
			defer unlock()
			return next(c)
		}
	}
}
