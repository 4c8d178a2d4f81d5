package report

import (
	"context"
	"errors"
	"testing"

	docRepo "github.com/IT-Nick/quizbot/internal/domain/document/repository"
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

func newReportService(t *testing.T) *Service {
	t.Helper()
	gw := docRepo.NewMemoryGateway()
	if err := gw.Save(context.Background(), newReportDocument()); err != nil {
		t.Fatalf("Save вернул ошибку: %v", err)
	}
	return NewService(gw)
}

func TestService_ClassReportOwnership(t *testing.T) {
	svc := newReportService(t)
	ctx := context.Background()

	if _, err := svc.ClassReport(ctx, "10", "1"); err != nil {
		t.Fatalf("Отчет владельца вернул ошибку: %v", err)
	}
	if _, err := svc.ClassReport(ctx, "", "1"); err != nil {
		t.Fatalf("Отчет без проверки владельца вернул ошибку: %v", err)
	}
	if _, err := svc.ClassReport(ctx, "99", "1"); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("Чужой класс: ожидалась ErrForbidden, получено %v", err)
	}
	if _, err := svc.ClassReport(ctx, "10", "42"); !errors.Is(err, model.ErrClassNotFound) {
		t.Errorf("Несуществующий класс: ожидалась ErrClassNotFound, получено %v", err)
	}
}

func TestService_StudentResults(t *testing.T) {
	svc := newReportService(t)
	ctx := context.Background()

	r, err := svc.StudentResults(ctx, "20")
	if err != nil {
		t.Fatalf("StudentResults вернул ошибку: %v", err)
	}
	if len(r.Results) != 1 || r.ClassID != "1" {
		t.Errorf("Неверная история ученика: %+v", r)
	}
	if _, err := svc.StudentResults(ctx, "10"); !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("Для учителя ожидалась ErrUserNotFound, получено %v", err)
	}
}

func TestService_TeacherTests(t *testing.T) {
	svc := newReportService(t)
	ctx := context.Background()

	text, n, err := svc.TeacherTests(ctx, "10")
	if err != nil || n != 1 || text == "" {
		t.Errorf("TeacherTests = (%q, %d, %v)", text, n, err)
	}
	if _, n, _ := svc.TeacherTests(ctx, "20"); n != 0 {
		t.Errorf("У ученика не должно быть тестов, получено %d", n)
	}
}
