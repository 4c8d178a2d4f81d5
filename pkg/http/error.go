package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error - тело ответа с ошибкой
type Error struct {
	Error string `json:"error"`
}

// ErrorResponse отправляет JSON с описанием ошибки и указанным статусом
func ErrorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Error{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// JSONResponse отправляет v в виде JSON со статусом 200
func JSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
