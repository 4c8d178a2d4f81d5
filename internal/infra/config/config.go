package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Способы получения обновлений Telegram
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Типы хранилища документа
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port string `yaml:"port" validate:"required"`
	} `yaml:"server"`
	TelegramBot struct {
		Token       string        `yaml:"token" validate:"required"`
		PollTimeout time.Duration `yaml:"poll_timeout" validate:"gt=0"`
		Debug       bool          `yaml:"debug"`
		// Mode - способ получения обновлений: polling или webhook
		Mode          string `yaml:"mode" validate:"oneof=polling webhook"`
		WebhookURL    string `yaml:"webhook_url" validate:"required_if=Mode webhook,omitempty,url"`
		WebhookListen string `yaml:"webhook_listen" validate:"required_if=Mode webhook"`
	} `yaml:"telegram_bot"`
	Auth struct {
		AdminCode string `yaml:"admin_code" validate:"required"`
	} `yaml:"auth"`
	Storage struct {
		Type     string `yaml:"type" validate:"oneof=memory file sqlite postgres"`
		Path     string `yaml:"path" validate:"required_if=Type file,required_if=Type sqlite"`
		Database struct {
			Host     string `yaml:"host"`
			Port     string `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			Name     string `yaml:"dbname"`
			DSN      string `yaml:"dsn"`
		} `yaml:"database"`
	} `yaml:"storage"`
	LLM struct {
		BaseURL      string        `yaml:"base_url"`
		APIKey       string        `yaml:"api_key"`
		Model        string        `yaml:"model" validate:"required"`
		Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
		Temperature  float32       `yaml:"temperature" validate:"gte=0,lte=2"`
		MaxTokens    int           `yaml:"max_tokens" validate:"gt=0"`
		MaxAttempts  int           `yaml:"max_attempts" validate:"gte=1,lte=5"`
		RetryBackoff time.Duration `yaml:"retry_backoff"`
		HintsEnabled bool          `yaml:"hints_enabled"`
	} `yaml:"llm"`
	Quiz struct {
		MinQuestions int `yaml:"min_questions" validate:"gte=1"`
		MaxRequested int `yaml:"max_requested" validate:"gte=1,lte=50"`
		MinClassName int `yaml:"min_class_name" validate:"gte=1"`
		MessageLimit int `yaml:"message_limit" validate:"gte=64,lte=4096"`
	} `yaml:"quiz"`
	State struct {
		TTL time.Duration `yaml:"ttl" validate:"gt=0"`
	} `yaml:"state"`
	Workers struct {
		Concurrency int `yaml:"concurrency" validate:"gte=1"`
	} `yaml:"workers"`
	Messages struct {
		// Path - YAML-файл, переопределяющий встроенные тексты
		Path string `yaml:"path"`
	} `yaml:"messages"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.TelegramBot.PollTimeout = 10 * time.Second
	cfg.TelegramBot.Mode = ModePolling
	cfg.TelegramBot.WebhookListen = ":8443"
	cfg.Storage.Type = StorageFile
	cfg.Storage.Path = "data/bot_data.json"
	cfg.LLM.Model = "yandexgpt-lite"
	cfg.LLM.Timeout = 40 * time.Second
	cfg.LLM.Temperature = 0.7
	cfg.LLM.MaxTokens = 2500
	cfg.LLM.MaxAttempts = 1
	cfg.LLM.RetryBackoff = 2 * time.Second
	cfg.Quiz.MinQuestions = 5
	cfg.Quiz.MaxRequested = 20
	cfg.Quiz.MinClassName = 3
	cfg.Quiz.MessageLimit = 4096
	cfg.State.TTL = 30 * time.Minute
	cfg.Workers.Concurrency = 4
	return cfg
}

// LoadConfig читает YAML-файл поверх значений по умолчанию, затем применяет переменные окружения
// (в том числе из файла .env, если он существует) и проверяет результат.
// Пустой filename означает конфигурацию только из окружения.
func LoadConfig(filename string) (*Config, error) {
	config, err := load(filename)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadStorageConfig загружает конфигурацию так же, как LoadConfig, но проверяет только хранилище.
// Используется командами, которым не нужны бот и сервис генерации.
func LoadStorageConfig(filename string) (*Config, error) {
	config, err := load(filename)
	if err != nil {
		return nil, err
	}
	if err := config.ValidateStorage(); err != nil {
		return nil, err
	}
	return config, nil
}

func load(filename string) (*Config, error) {
	config := Default()

	if filename != "" {
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}

		defer func(f *os.File) {
			err := f.Close()
			if err != nil {
				fmt.Println("f.Close() failed ", err)
			}
		}(f)

		if err := yaml.NewDecoder(f).Decode(config); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
	}

	_ = godotenv.Load()
	config.applyEnv()
	return config, nil
}

// applyEnv переопределяет секреты и параметры развертывания из переменных окружения
func (c *Config) applyEnv() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("TELEGRAM_BOT_TOKEN", &c.TelegramBot.Token)
	setString("ADMIN_CODE", &c.Auth.AdminCode)
	setString("LLM_API_KEY", &c.LLM.APIKey)
	setString("LLM_BASE_URL", &c.LLM.BaseURL)
	setString("LLM_MODEL", &c.LLM.Model)
	setString("STORAGE_TYPE", &c.Storage.Type)
	setString("STORAGE_PATH", &c.Storage.Path)
	setString("DATABASE_DSN", &c.Storage.Database.DSN)
	setString("HTTP_PORT", &c.Server.Port)
	setString("MESSAGES_PATH", &c.Messages.Path)
	setString("BOT_MODE", &c.TelegramBot.Mode)
	setString("WEBHOOK_URL", &c.TelegramBot.WebhookURL)

	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	setBool("LLM_HINTS_ENABLED", &c.LLM.HintsEnabled)
	setBool("TELEGRAM_DEBUG", &c.TelegramBot.Debug)
}

// Validate проверяет конфигурацию по тегам validate
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.validatePostgres()
}

// ValidateStorage проверяет только секцию storage
func (c *Config) ValidateStorage() error {
	if err := validator.New().StructPartial(c, "Storage.Type", "Storage.Path"); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.validatePostgres()
}

func (c *Config) validatePostgres() error {
	if c.Storage.Type == StoragePostgres && c.Storage.Database.DSN == "" && c.Storage.Database.Host == "" {
		return fmt.Errorf("invalid config: storage.database.dsn or storage.database.host is required for postgres")
	}
	return nil
}

// PostgresDSN собирает строку подключения к PostgreSQL
func (c *Config) PostgresDSN() string {
	db := c.Storage.Database
	if db.DSN != "" {
		return db.DSN
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", db.User, db.Password, db.Host, db.Port, db.Name)
}
