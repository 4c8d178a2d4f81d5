package transport

import (
	"context"
	"errors"
	"testing"

	"gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/flow"
)

type sent struct {
	to   telebot.Recipient
	what interface{}
	opts *telebot.SendOptions
}

type fakeSender struct {
	sent []sent
	err  error
}

func (f *fakeSender) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	s := sent{to: to, what: what}
	if len(opts) > 0 {
		s.opts, _ = opts[0].(*telebot.SendOptions)
	}
	f.sent = append(f.sent, s)
	return &telebot.Message{}, nil
}

func TestTelegram_PromptWithOptions(t *testing.T) {
	f := &fakeSender{}
	tr := NewTelegram(f)

	if err := tr.PromptWithOptions(context.Background(), "42", "Выберите", []string{"Легкий", "Сложный"}); err != nil {
		t.Fatalf("PromptWithOptions вернул ошибку: %v", err)
	}
	if len(f.sent) != 1 {
		t.Fatalf("Ожидалось одно сообщение, получено %d", len(f.sent))
	}
	got := f.sent[0]
	if got.to.Recipient() != "42" || got.what != "Выберите" {
		t.Errorf("Неверный получатель или текст: %s %v", got.to.Recipient(), got.what)
	}
	kb := got.opts.ReplyMarkup.ReplyKeyboard
	if len(kb) != 2 || kb[0][0].Text != "Легкий" || kb[1][0].Text != "Сложный" {
		t.Errorf("Неверная клавиатура: %+v", kb)
	}
	if !got.opts.ReplyMarkup.ResizeKeyboard {
		t.Error("Клавиатура должна подстраиваться по размеру")
	}
}

func TestTelegram_ClearPromptAndChoice(t *testing.T) {
	f := &fakeSender{}
	tr := NewTelegram(f)
	ctx := context.Background()

	if err := tr.ClearPrompt(ctx, "7", "Готово"); err != nil {
		t.Fatalf("ClearPrompt вернул ошибку: %v", err)
	}
	if err := tr.PromptChoice(ctx, "7", "Кто вы?", []flow.Choice{{Label: "Учитель", Token: "role_teacher"}}); err != nil {
		t.Fatalf("PromptChoice вернул ошибку: %v", err)
	}
	if !f.sent[0].opts.ReplyMarkup.RemoveKeyboard {
		t.Error("ClearPrompt должен убирать клавиатуру")
	}
	inline := f.sent[1].opts.ReplyMarkup.InlineKeyboard
	if len(inline) != 1 || inline[0][0].Data != "role_teacher" || inline[0][0].Text != "Учитель" {
		t.Errorf("Неверные inline-кнопки: %+v", inline)
	}
}

func TestTelegram_SendErrors(t *testing.T) {
	tr := NewTelegram(&fakeSender{err: errors.New("boom")})
	if err := tr.SendMessage(context.Background(), "1", "x"); err == nil {
		t.Error("Ожидалась ошибка отправки")
	}

	tr = NewTelegram(&fakeSender{})
	if err := tr.SendMessage(context.Background(), "abc", "x"); err == nil {
		t.Error("Ожидалась ошибка для некорректного chat id")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := tr.SendMessage(ctx, "1", "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Ожидалась context.Canceled, получено %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		user telebot.User
		want string
	}{
		{telebot.User{ID: 1, FirstName: "Иван", LastName: "Петров"}, "Иван Петров"},
		{telebot.User{ID: 1, FirstName: "Иван"}, "Иван"},
		{telebot.User{ID: 1, Username: "ivan"}, "ivan"},
		{telebot.User{ID: 5}, "5"},
	}
	for _, tt := range tests {
		if got := DisplayName(&tt.user); got != tt.want {
			t.Errorf("DisplayName(%+v) = %q, ожидалось %q", tt.user, got, tt.want)
		}
	}
}

func TestCleanCallbackData(t *testing.T) {
	if got := CleanCallbackData(" \frole_student "); got != "role_student" {
		t.Errorf("Неверная очистка: %q", got)
	}
}
