package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

var (
	// ErrConflict возвращается Save, если документ успел измениться после загрузки
	ErrConflict = errors.New("document version conflict")
	// ErrCorruptDocument возвращается, если сохраненный документ не удается разобрать
	ErrCorruptDocument = errors.New("stored document is corrupt")
)

// maxUpdateAttempts - сколько раз Update повторяет цикл загрузка-изменение-сохранение при конфликте версий
const maxUpdateAttempts = 5

// Gateway описывает хранилище единственного документа.
// Save выполняет сравнение с обменом по Document.Version и при несовпадении возвращает ErrConflict.
type Gateway interface {
	Load(ctx context.Context) (*model.Document, error)
	Save(ctx context.Context, doc *model.Document) error
	Close() error
}

// Update загружает документ, применяет к нему fn и сохраняет результат.
// При конфликте версий цикл повторяется. Ошибка fn прерывает операцию без сохранения.
func Update(ctx context.Context, g Gateway, fn func(doc *model.Document) error) error {
	const op = "repository.Update"

	var lastErr error
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		doc, err := g.Load(ctx)
		if err != nil {
			return fmt.Errorf("%s: failed to load document: %w", op, err)
		}

		if err := fn(doc); err != nil {
			return err
		}

		err = g.Save(ctx, doc)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrConflict) {
			return fmt.Errorf("%s: failed to save document: %w", op, err)
		}
		lastErr = err
	}
	return fmt.Errorf("%s: gave up after %d attempts: %w", op, maxUpdateAttempts, lastErr)
}

// decode разбирает тело документа и заполняет отсутствующие коллекции
func decode(body []byte) (*model.Document, error) {
	doc := model.NewDocument()
	if len(body) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	doc.Normalize()
	return doc, nil
}

// encode сериализует документ для записи
func encode(doc *model.Document) ([]byte, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return body, nil
}
