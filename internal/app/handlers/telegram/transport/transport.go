package transport

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/flow"
)

// Sender отправляет сообщения. Реализуется *telebot.Bot.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Telegram реализует flow.Transport поверх Bot API
type Telegram struct {
	sender Sender
}

var _ flow.Transport = (*Telegram)(nil)

// NewTelegram создает транспорт
func NewTelegram(sender Sender) *Telegram {
	return &Telegram{sender: sender}
}

func (t *Telegram) SendMessage(ctx context.Context, chatID, text string) error {
	return t.send(ctx, chatID, text, nil)
}

func (t *Telegram) PromptWithOptions(ctx context.Context, chatID, text string, options []string) error {
	rows := make([][]telebot.ReplyButton, 0, len(options))
	for _, o := range options {
		rows = append(rows, []telebot.ReplyButton{{Text: o}})
	}
	return t.send(ctx, chatID, text, &telebot.ReplyMarkup{
		ReplyKeyboard:  rows,
		ResizeKeyboard: true,
	})
}

func (t *Telegram) ClearPrompt(ctx context.Context, chatID, text string) error {
	return t.send(ctx, chatID, text, &telebot.ReplyMarkup{RemoveKeyboard: true})
}

func (t *Telegram) PromptChoice(ctx context.Context, chatID, text string, choices []flow.Choice) error {
	rows := make([][]telebot.InlineButton, 0, len(choices))
	for _, c := range choices {
		rows = append(rows, []telebot.InlineButton{{Text: c.Label, Data: c.Token}})
	}
	return t.send(ctx, chatID, text, &telebot.ReplyMarkup{InlineKeyboard: rows})
}

func (t *Telegram) send(ctx context.Context, chatID, text string, markup *telebot.ReplyMarkup) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chat id %q: %w", chatID, err)
	}
	opts := &telebot.SendOptions{DisableWebPagePreview: true}
	if markup != nil {
		opts.ReplyMarkup = markup
	}
	if _, err := t.sender.Send(telebot.ChatID(id), text, opts); err != nil {
		return fmt.Errorf("telegram send to %d: %w", id, err)
	}
	return nil
}

// MessageFrom собирает входящее событие из контекста обновления
func MessageFrom(c telebot.Context, text string) flow.Message {
	var in flow.Message
	in.Text = text
	if s := c.Sender(); s != nil {
		in.UserID = strconv.FormatInt(s.ID, 10)
		in.ChatID = in.UserID
		in.DisplayName = DisplayName(s)
	}
	if chat := c.Chat(); chat != nil {
		in.ChatID = strconv.FormatInt(chat.ID, 10)
	}
	return in
}

// DisplayName возвращает имя пользователя для приветствия и отчетов
func DisplayName(u *telebot.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	if name == "" {
		name = strconv.FormatInt(u.ID, 10)
	}
	return name
}

// CleanCallbackData убирает служебные символы из данных кнопки
func CleanCallbackData(data string) string {
	cleaned := strings.TrimSpace(data)
	cleaned = strings.ReplaceAll(cleaned, "\f", "")
	cleaned = strings.ReplaceAll(cleaned, "\\f", "")
	return cleaned
}
