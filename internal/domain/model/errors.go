package model

import (
	"errors"
	"fmt"
)

// Ожидаемые исходы операций. Диалог отвечает на них повторным запросом, а не общей ошибкой.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyRegistered = errors.New("user already registered")
)

// Уточненные ошибки поиска. errors.Is(err, ErrNotFound) для них тоже истинно.
var (
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrClassNotFound = fmt.Errorf("class %w", ErrNotFound)
	ErrTestNotFound  = fmt.Errorf("test %w", ErrNotFound)
)
