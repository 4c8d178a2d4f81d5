package text_handler

import (
	"context"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/transport"
	"github.com/IT-Nick/quizbot/internal/domain/flow"
)

// MessageHandler принимает текстовые события
type MessageHandler interface {
	OnMessage(ctx context.Context, in flow.Message) error
}

// TextHandler передает текст и команды пользователя в машину диалогов
type TextHandler struct {
	machine MessageHandler
}

// NewTextHandler возвращает структуру обработчика
func NewTextHandler(machine MessageHandler) *TextHandler {
	return &TextHandler{machine: machine}
}

// Handle обрабатывает текстовое сообщение или команду
func (h *TextHandler) Handle(c telebot.Context) error {
	if c.Sender() == nil || c.Message() == nil {
		return nil
	}
	return h.machine.OnMessage(context.Background(), transport.MessageFrom(c, normalize(c.Message().Text)))
}

// GetHandlerFunc возвращает обработчик в формате telebot.HandlerFunc
func (h *TextHandler) GetHandlerFunc() telebot.HandlerFunc {
	return func(c telebot.Context) error {
		return h.Handle(c)
	}
}

// normalize убирает из команды аргументы и имя бота: "/start@quiz_bot x" -> "/start"
func normalize(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	cmd := strings.Fields(text)[0]
	if i := strings.Index(cmd, "@"); i > 0 {
		cmd = cmd[:i]
	}
	return cmd
}
