package callback_handler

import (
	"context"
	"log/slog"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/transport"
	"github.com/IT-Nick/quizbot/internal/domain/flow"
)

// SelectionHandler принимает нажатия кнопок
type SelectionHandler interface {
	OnSelection(ctx context.Context, in flow.Message) error
}

// CallbackHandler передает токен inline-кнопки в машину диалогов
type CallbackHandler struct {
	machine SelectionHandler
}

// NewCallbackHandler возвращает структуру обработчика
func NewCallbackHandler(machine SelectionHandler) *CallbackHandler {
	return &CallbackHandler{machine: machine}
}

func (h *CallbackHandler) Handle(c telebot.Context) error {
	cb := c.Callback()
	if cb == nil || c.Sender() == nil {
		return nil
	}
	// Убираем "часики" на кнопке до обработки
	if err := c.Respond(); err != nil {
		slog.Warn("failed to answer callback", "sender_id", c.Sender().ID, "error", err)
	}
	return h.machine.OnSelection(context.Background(), transport.MessageFrom(c, transport.CleanCallbackData(cb.Data)))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *CallbackHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}
