package flow

import "context"

// Choice - кнопка выбора, передающая токен вместо текста
type Choice struct {
	Label string
	Token string
}

// Transport отправляет сообщения пользователю. Реализуется адаптером мессенджера.
type Transport interface {
	SendMessage(ctx context.Context, chatID, text string) error
	// PromptWithOptions отправляет текст с клавиатурой вариантов
	PromptWithOptions(ctx context.Context, chatID, text string, options []string) error
	// ClearPrompt отправляет текст и убирает клавиатуру вариантов
	ClearPrompt(ctx context.Context, chatID, text string) error
	// PromptChoice отправляет текст с кнопками, возвращающими токен через OnSelection
	PromptChoice(ctx context.Context, chatID, text string, choices []Choice) error
}

// Message - входящее событие от пользователя. Для OnSelection Text содержит токен кнопки.
type Message struct {
	UserID      string
	ChatID      string
	DisplayName string
	Text        string
}
