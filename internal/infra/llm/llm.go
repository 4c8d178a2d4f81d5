package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

// ErrEmptyResponse возвращается, если сервис ответил без вариантов
var ErrEmptyResponse = errors.New("LLM returned no choices")

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// Options задает параметры генерации
type Options struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// New creates a new LLM client.
func New(opts Options) *Client {
	config := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	return &Client{
		api:         openai.NewClientWithConfig(config),
		model:       opts.Model,
		temperature: opts.Temperature,
		maxTokens:   opts.MaxTokens,
	}
}

// Complete отправляет системную инструкцию и запрос пользователя и возвращает текст первого варианта ответа.
// Ответ возвращается как есть: сервис может обернуть JSON в поясняющий текст.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		logCallError(err)
		return "", fmt.Errorf("LLM API call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	raw := resp.Choices[0].Message.Content
	slog.Debug("LLM response", "raw", raw)
	return raw, nil
}

// logCallError различает в логах неуспешный HTTP-статус и недоступность сервиса
func logCallError(err error) {
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		slog.Warn("LLM API error", "status", apiErr.HTTPStatusCode, "message", apiErr.Message)
	case errors.As(err, &reqErr):
		slog.Warn("LLM request failed", "status", reqErr.HTTPStatusCode, "error", reqErr.Err)
	case errors.Is(err, context.DeadlineExceeded):
		slog.Warn("LLM call timed out")
	default:
		slog.Warn("LLM service unreachable", "error", err)
	}
}
