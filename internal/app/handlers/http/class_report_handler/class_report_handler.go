package class_report_handler

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

// ReportProvider строит отчет по классу
type ReportProvider interface {
	ClassReport(ctx context.Context, teacherID, classID string) (dto.ClassReportResponse, error)
}

// ClassReportHandler структура для обработчика отчета по классу
type ClassReportHandler struct {
	reports ReportProvider
}

// NewClassReportHandler создает новый экземпляр обработчика
func NewClassReportHandler(reports ReportProvider) *ClassReportHandler {
	return &ClassReportHandler{reports: reports}
}

// ServeHTTP отдает отчет по классу из пути /classes/{classID}/report
func (h *ClassReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")
	if classID == "" {
		httpError.ErrorResponse(w, http.StatusBadRequest, "Missing class id")
		return
	}

	report, err := h.reports.ClassReport(r.Context(), "", classID)
	if errors.Is(err, model.ErrNotFound) {
		httpError.ErrorResponse(w, http.StatusNotFound, fmt.Sprintf("Class %s not found", classID))
		return
	}
	if err != nil {
		httpError.ErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("Failed to build report: %v", err))
		return
	}

	httpError.JSONResponse(w, report)
}
