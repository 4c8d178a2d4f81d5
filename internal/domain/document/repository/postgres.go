package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresGateway хранит документ в таблице documents PostgreSQL (тело в JSONB)
type PostgresGateway struct {
	db *pgxpool.Pool
}

// NewPostgresGateway создает новый экземпляр PostgresGateway и применяет схему
func NewPostgresGateway(ctx context.Context, db *pgxpool.Pool) (*PostgresGateway, error) {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			id         SMALLINT PRIMARY KEY,
			version    BIGINT      NOT NULL,
			body       JSONB       NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return nil, fmt.Errorf("failed to create documents table: %w", err)
	}
	return &PostgresGateway{db: db}, nil
}

// Load получает документ из базы данных
func (r *PostgresGateway) Load(ctx context.Context) (*model.Document, error) {
	var (
		version int64
		body    []byte
	)
	err := r.db.QueryRow(ctx, "SELECT version, body FROM documents WHERE id = 1").Scan(&version, &body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewDocument(), nil
		}
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	doc, err := decode(body)
	if err != nil {
		return nil, err
	}
	doc.Version = version
	return doc, nil
}

// Save сохраняет документ с проверкой версии
func (r *PostgresGateway) Save(ctx context.Context, doc *model.Document) error {
	body, err := encode(doc)
	if err != nil {
		return err
	}

	var query string
	args := []any{body}
	if doc.Version == 0 {
		query = `
                INSERT INTO documents (id, version, body, updated_at)
                VALUES (1, 1, $1, CURRENT_TIMESTAMP)
                ON CONFLICT (id) DO NOTHING`
	} else {
		query = `
                UPDATE documents
                SET body = $1, version = version + 1, updated_at = CURRENT_TIMESTAMP
                WHERE id = 1 AND version = $2`
		args = append(args, doc.Version)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}
	doc.Version++
	return nil
}

// Close закрывает пул соединений
func (r *PostgresGateway) Close() error {
	r.db.Close()
	return nil
}
