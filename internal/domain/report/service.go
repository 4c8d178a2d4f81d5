package report

import (
	"context"
	"fmt"

	classesRepo "github.com/IT-Nick/quizbot/internal/domain/classes/repository"
	docRepo "github.com/IT-Nick/quizbot/internal/domain/document/repository"
	"github.com/IT-Nick/quizbot/internal/domain/dto"
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// Service строит отчеты по текущему состоянию документа
type Service struct {
	gw docRepo.Gateway
}

// NewService создает новый экземпляр Service
func NewService(gw docRepo.Gateway) *Service {
	return &Service{gw: gw}
}

// ClassReport строит отчет по классу. Если teacherID не пуст, класс должен принадлежать этому учителю.
func (s *Service) ClassReport(ctx context.Context, teacherID, classID string) (dto.ClassReportResponse, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return dto.ClassReportResponse{}, fmt.Errorf("failed to load document: %w", err)
	}
	class := classesRepo.NewClassRepository(doc, nil).GetClassByID(classID)
	if class == nil {
		return dto.ClassReportResponse{}, fmt.Errorf("%s: %w", classID, model.ErrClassNotFound)
	}
	if teacherID != "" && class.TeacherID != teacherID {
		return dto.ClassReportResponse{}, fmt.Errorf("class %s: %w", classID, model.ErrForbidden)
	}
	return BuildClassReport(doc, class), nil
}

// StudentResults строит историю результатов ученика
func (s *Service) StudentResults(ctx context.Context, studentID string) (dto.StudentResultsResponse, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return dto.StudentResultsResponse{}, fmt.Errorf("failed to load document: %w", err)
	}
	student, ok := doc.Users[studentID]
	if !ok || !student.IsStudent() {
		return dto.StudentResultsResponse{}, fmt.Errorf("%s: %w", studentID, model.ErrUserNotFound)
	}
	return BuildStudentResults(doc, student), nil
}

// TeacherTests возвращает текст списка тестов учителя и их количество
func (s *Service) TeacherTests(ctx context.Context, teacherID string) (string, int, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("failed to load document: %w", err)
	}
	tests := doc.TestsByTeacher(teacherID)
	if len(tests) == 0 {
		return "", 0, nil
	}
	return FormatTeacherTests(doc, tests), len(tests), nil
}
