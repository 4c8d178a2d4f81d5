package student_results_handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/IT-Nick/quizbot/internal/domain/dto"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	httpError "github.com/IT-Nick/quizbot/pkg/http"
)

// ResultsProvider строит историю результатов ученика
type ResultsProvider interface {
	StudentResults(ctx context.Context, studentID string) (dto.StudentResultsResponse, error)
}

// StudentResultsHandler структура для обработчика
type StudentResultsHandler struct {
	reports ResultsProvider
}

// NewStudentResultsHandler создает новый экземпляр обработчика
func NewStudentResultsHandler(reports ResultsProvider) *StudentResultsHandler {
	return &StudentResultsHandler{reports: reports}
}

// ServeHTTP отдает результаты ученика из пути /students/{studentID}/results
func (h *StudentResultsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	studentID := chi.URLParam(r, "studentID")
	if studentID == "" {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Missing student id")
		return
	}

	results, err := h.reports.StudentResults(r.Context(), studentID)
	if errors.Is(err, model.ErrNotFound) {
		httpError.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("Student %s not found", studentID))
		return
	}
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get results: %v", err))
		return
	}

	httpError.JSONResponse(w, results)
}
