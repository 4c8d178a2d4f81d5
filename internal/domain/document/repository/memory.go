package repository

import (
	"context"
	"sync"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// MemoryGateway хранит документ в памяти процесса. Подходит для разработки и тестов.
type MemoryGateway struct {
	mu      sync.Mutex
	version int64
	body    []byte
}

// NewMemoryGateway создает пустое хранилище в памяти
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

// Load возвращает независимую копию документа
func (g *MemoryGateway) Load(ctx context.Context) (*model.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	doc, err := decode(g.body)
	if err != nil {
		return nil, err
	}
	doc.Version = g.version
	return doc, nil
}

// Save сохраняет копию документа, если его версия совпадает с текущей
func (g *MemoryGateway) Save(ctx context.Context, doc *model.Document) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if doc.Version != g.version {
		return ErrConflict
	}
	body, err := encode(doc)
	if err != nil {
		return err
	}
	g.body = body
	g.version++
	doc.Version = g.version
	return nil
}

func (g *MemoryGateway) Close() error { return nil }
