package middleware

import (
	"fmt"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"
)

// DebugUserActions при включенном режиме отладки отправляет пользователю описание его действия
// и активного диалога после обработки обновления. describe возвращает имя диалога или пустую строку.
func DebugUserActions(enabled bool, describe func(userID string) string) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			err := next(c)
			user := c.Sender()
			if !enabled || user == nil {
				return err
			}

			var action string
			if cb := c.Callback(); cb != nil {
				action = "Callback: " + cb.Data
			} else if msg := c.Message(); msg != nil {
				action = "Message: " + msg.Text
			} else {
				action = "Unknown action"
			}
			state := describe(strconv.FormatInt(user.ID, 10))
			debugMsg := fmt.Sprintf("DEBUG: User: %s (ID: %d), State: %s, Action: %s", user.FirstName, user.ID, state, action)
			if _, sendErr := c.Bot().Send(user, debugMsg); sendErr != nil {
				slog.Warn("failed to send debug message", "user_id", user.ID, "error", sendErr)
			}
			return err
		}
	}
}
