package quizgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// ErrNoResult означает, что сервис генерации не дал пригодного результата:
// ошибка вызова, таймаут, неразборчивый JSON или ни одного корректного вопроса.
var ErrNoResult = errors.New("generation produced no result")

// Completer - внешний сервис генерации текста
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Generator превращает тему, количество и сложность в список проверенных вопросов
type Generator struct {
	llm     Completer
	timeout time.Duration
}

// NewGenerator создает генератор с ограничением времени на один вызов сервиса
func NewGenerator(llm Completer, timeout time.Duration) *Generator {
	return &Generator{llm: llm, timeout: timeout}
}

// Generate запрашивает у сервиса count вопросов и возвращает не более count проверенных.
// Любая неудача сводится к ErrNoResult; причина пишется в лог.
func (g *Generator) Generate(ctx context.Context, topic string, count int, difficulty model.Difficulty) ([]model.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.llm.Complete(ctx, testSystemPrompt, buildTestPrompt(topic, count, difficulty))
	if err != nil {
		slog.Warn("test generation call failed", "topic", topic, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNoResult, err)
	}

	questions, err := Sanitize(ExtractJSON(text), count)
	if err != nil {
		slog.Warn("test generation returned malformed JSON", "topic", topic, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrNoResult, err)
	}
	if len(questions) == 0 {
		slog.Warn("test generation returned no valid questions", "topic", topic)
		return nil, ErrNoResult
	}

	slog.Info("test generated", "topic", topic, "requested", count, "validated", len(questions))
	return questions, nil
}

// Hint просит сервис объяснить ошибку ученика, не называя правильный ответ
func (g *Generator) Hint(ctx context.Context, question, wrongAnswer string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.llm.Complete(ctx, hintSystemPrompt, buildHintPrompt(question, wrongAnswer))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoResult, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoResult
	}
	return text, nil
}
