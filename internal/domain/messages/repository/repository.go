package repository

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/messages.yaml
var defaultCatalog []byte

// MessageRepository хранит тексты сообщений бота по ключам
type MessageRepository struct {
	messages map[string]string
}

// NewMessageRepository загружает встроенный каталог и, если указан путь, поверх него файл с переопределениями
func NewMessageRepository(overridePath string) (*MessageRepository, error) {
	messages := make(map[string]string)
	if err := yaml.Unmarshal(defaultCatalog, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode default messages: %w", err)
	}
	if overridePath != "" {
		data, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read messages file: %w", err)
		}
		overrides := make(map[string]string)
		if err := yaml.Unmarshal(data, &overrides); err != nil {
			return nil, fmt.Errorf("failed to decode messages file: %w", err)
		}
		for k, v := range overrides {
			messages[k] = v
		}
	}
	return &MessageRepository{messages: messages}, nil
}

// GetMessageByKey возвращает текст сообщения по ключу
func (r *MessageRepository) GetMessageByKey(messageKey string) (string, error) {
	text, ok := r.messages[messageKey]
	if !ok {
		return "", fmt.Errorf("message with key %s not found", messageKey)
	}
	return text, nil
}
