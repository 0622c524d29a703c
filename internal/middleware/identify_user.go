package middleware

import (
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v3"
)

const UserIDKey = "userID"

// IdentifyUser names the sender the way the memory store will know them:
// username first, then first name, then the numeric id.
func IdentifyUser() tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				slog.WarnContext(ContextFrom(c), "Update without sender ignored")
				return nil
			}
			c.Set(UserIDKey, SenderName(sender))
			return next(c)
		}
	}
}

func SenderName(sender *tele.User) string {
	switch {
	case sender.Username != "":
		return sender.Username
	case sender.FirstName != "":
		return sender.FirstName
	default:
		return strconv.FormatInt(sender.ID, 10)
	}
}
