package middleware

import (
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Logger возвращает middleware, которое логирует входящие обновления Telegram на уровне debug.
// Если логгер не передан, используется slog.Default().
func Logger(logger ...*slog.Logger) tele.MiddlewareFunc {
	l := slog.Default()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			attrs := []any{"update_id", c.Update().ID}
			if s := c.Sender(); s != nil {
				attrs = append(attrs, "sender_id", s.ID)
			}
			switch {
			case c.Callback() != nil:
				attrs = append(attrs, "kind", "callback", "data", c.Callback().Data)
			case c.Message() != nil:
				attrs = append(attrs, "kind", "message", "text", c.Message().Text)
			default:
				attrs = append(attrs, "kind", "other")
			}
			l.Debug("telegram update", attrs...)
			return next(c)
		}
	}
}
