package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	docRepo "github.com/IT-Nick/quizbot/internal/domain/document/repository"
	"github.com/IT-Nick/quizbot/internal/infra/config"
)

// InitDatabase устанавливает подключение к PostgreSQL
func InitDatabase(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	const op = "app.InitDatabase"

	connConfig, err := pgxpool.ParseConfig(cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	slog.Info("database connected", "host", connConfig.ConnConfig.Host, "database", connConfig.ConnConfig.Database)
	return db, nil
}

// OpenGateway открывает хранилище документа выбранного в конфигурации типа
func OpenGateway(ctx context.Context, cfg *config.Config) (docRepo.Gateway, error) {
	switch cfg.Storage.Type {
	case config.StorageMemory:
		slog.Warn("using in-memory storage, data will be lost on restart")
		return docRepo.NewMemoryGateway(), nil
	case config.StorageFile:
		return docRepo.NewFileGateway(cfg.Storage.Path)
	case config.StorageSQLite:
		return docRepo.NewSQLiteGateway(cfg.Storage.Path)
	case config.StoragePostgres:
		db, err := InitDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		gw, err := docRepo.NewPostgresGateway(ctx, db)
		if err != nil {
			db.Close()
			return nil, err
		}
		return gw, nil
	}
	return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
}
