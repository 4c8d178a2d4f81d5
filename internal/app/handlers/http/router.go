package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/IT-Nick/quizbot/internal/app/handlers/http/class_report_handler"
	"github.com/IT-Nick/quizbot/internal/app/handlers/http/student_results_handler"
	"github.com/IT-Nick/quizbot/internal/domain/report"
	httpError "github.com/IT-Nick/quizbot/pkg/http"
)

// AdminCodeHeader - заголовок с общим кодом администратора
const AdminCodeHeader = "X-Admin-Code"

// NewRouter собирает маршруты HTTP API отчетов
func NewRouter(reports *report.Service, adminCode string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpError.JSONResponse(w, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireAdminCode(adminCode))
		r.Method(http.MethodGet, "/classes/{classID}/report", class_report_handler.NewClassReportHandler(reports))
		r.Method(http.MethodGet, "/students/{studentID}/results", student_results_handler.NewStudentResultsHandler(reports))
	})
	return r
}

// RequireAdminCode пропускает только запросы с верным кодом администратора
func RequireAdminCode(code string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(AdminCodeHeader)
			if code == "" || subtle.ConstantTimeCompare([]byte(got), []byte(code)) != 1 {
				httpError.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin code")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
