package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/IT-Nick/quizbot/internal/domain/model"

	_ "modernc.org/sqlite"
)

// SQLiteGateway хранит документ в одной строке таблицы documents с номером версии
type SQLiteGateway struct {
	db *sql.DB
}

// NewSQLiteGateway открывает базу SQLite и создает схему
func NewSQLiteGateway(dbPath string) (*SQLiteGateway, error) {
	const op = "repository.NewSQLiteGateway"

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%s: open database: %w", op, err)
	}
	// :memory: создает отдельную базу на каждое соединение
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%s: ping database: %w", op, err)
	}

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY,
		version INTEGER NOT NULL,
		body TEXT NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("%s: migrate: %w", op, err)
	}
	return &SQLiteGateway{db: db}, nil
}

// Load читает документ; отсутствие строки означает пустой документ
func (g *SQLiteGateway) Load(ctx context.Context) (*model.Document, error) {
	var (
		version int64
		body    string
	)
	err := g.db.QueryRowContext(ctx, `SELECT version, body FROM documents WHERE id = 1`).Scan(&version, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	doc, err := decode([]byte(body))
	if err != nil {
		return nil, err
	}
	doc.Version = version
	return doc, nil
}

// Save обновляет строку документа только при совпадении версии
func (g *SQLiteGateway) Save(ctx context.Context, doc *model.Document) error {
	body, err := encode(doc)
	if err != nil {
		return err
	}

	var res sql.Result
	if doc.Version == 0 {
		res, err = g.db.ExecContext(ctx,
			`INSERT INTO documents (id, version, body) VALUES (1, 1, ?) ON CONFLICT(id) DO NOTHING`, string(body))
	} else {
		res, err = g.db.ExecContext(ctx,
			`UPDATE documents SET body = ?, version = version + 1 WHERE id = 1 AND version = ?`, string(body), doc.Version)
	}
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	if n == 0 {
		return ErrConflict
	}
	doc.Version++
	return nil
}

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}
