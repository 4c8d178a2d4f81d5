package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// FileGateway сохраняет документ в JSON-файл.
// Запись выполняется через временный файл и переименование, поэтому файл никогда не остается записанным наполовину.
type FileGateway struct {
	filename string
	mu       sync.Mutex
}

// NewFileGateway создаёт хранилище в указанном файле. Если файла нет, он будет создан при первом сохранении.
func NewFileGateway(filename string) (*FileGateway, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return &FileGateway{filename: filename}, nil
}

// Load читает документ из файла.
// Поврежденный файл переносится в резервную копию, а вызывающему возвращается пустой документ.
func (g *FileGateway) Load(ctx context.Context) (*model.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	data, err := os.ReadFile(g.filename)
	if errors.Is(err, os.ErrNotExist) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", g.filename, err)
	}

	doc, err := decode(data)
	if errors.Is(err, ErrCorruptDocument) {
		backup := fmt.Sprintf("%s.corrupt-%d", g.filename, time.Now().Unix())
		if renameErr := os.Rename(g.filename, backup); renameErr != nil {
			return nil, fmt.Errorf("%w (backup failed: %v)", err, renameErr)
		}
		slog.Error("stored document is corrupt, starting with an empty one", "file", g.filename, "backup", backup, "error", err)
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Save записывает документ, если версия в файле совпадает с версией документа
func (g *FileGateway) Save(ctx context.Context, doc *model.Document) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	current, err := g.storedVersion()
	if err != nil {
		return err
	}
	if current != doc.Version {
		return ErrConflict
	}

	doc.Version++
	body, err := encode(doc)
	if err != nil {
		doc.Version--
		return err
	}

	tmp := g.filename + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		doc.Version--
		return fmt.Errorf("failed to write file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, g.filename); err != nil {
		doc.Version--
		return fmt.Errorf("failed to replace file %s: %w", g.filename, err)
	}
	return nil
}

// storedVersion возвращает версию документа на диске; отсутствующий или поврежденный файл имеет версию 0
func (g *FileGateway) storedVersion() (int64, error) {
	data, err := os.ReadFile(g.filename)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read file %s: %w", g.filename, err)
	}
	doc, err := decode(data)
	if err != nil {
		return 0, nil
	}
	return doc.Version, nil
}

func (g *FileGateway) Close() error { return nil }
