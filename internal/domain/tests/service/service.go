package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	classesRepo "github.com/IT-Nick/quizbot/internal/domain/classes/repository"
	docRepo "github.com/IT-Nick/quizbot/internal/domain/document/repository"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/tests/repository"
)

// ErrTooFewQuestions - после проверки осталось меньше вопросов, чем требуется для теста
var ErrTooFewQuestions = errors.New("too few valid questions")

// Generator генерирует проверенные вопросы по теме
type Generator interface {
	Generate(ctx context.Context, topic string, count int, difficulty model.Difficulty) ([]model.Question, error)
}

// TestService для работы с тестами
type TestService struct {
	gw           docRepo.Gateway
	gen          Generator
	minQuestions int
}

// NewTestService создает новый экземпляр TestService
func NewTestService(gw docRepo.Gateway, gen Generator, minQuestions int) *TestService {
	return &TestService{gw: gw, gen: gen, minQuestions: minQuestions}
}

// CreateTest генерирует вопросы и сохраняет неназначенный тест.
// Тест принимается только если проверенных вопросов не меньше minQuestions, независимо от запрошенного количества.
func (s *TestService) CreateTest(ctx context.Context, teacherID, topic string, count int, difficulty model.Difficulty) (*model.Test, error) {
	questions, err := s.gen.Generate(ctx, topic, count, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}
	if len(questions) < s.minQuestions {
		slog.Warn("generated test rejected", "topic", topic, "requested", count, "valid", len(questions), "min", s.minQuestions)
		return nil, fmt.Errorf("%w: got %d, need %d", ErrTooFewQuestions, len(questions), s.minQuestions)
	}

	var test *model.Test
	err = docRepo.Update(ctx, s.gw, func(doc *model.Document) error {
		test = repository.NewTestRepository(doc).CreateTest(teacherID, topic, difficulty, questions)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save test: %w", err)
	}
	return test, nil
}

// GetTeacherTests возвращает тесты учителя в порядке создания
func (s *TestService) GetTeacherTests(ctx context.Context, teacherID string) ([]*model.Test, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tests: %w", err)
	}
	return doc.TestsByTeacher(teacherID), nil
}

// GetTeacherTest возвращает тест, если он принадлежит учителю
func (s *TestService) GetTeacherTest(ctx context.Context, teacherID, testID string) (*model.Test, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tests: %w", err)
	}
	test := repository.NewTestRepository(doc).GetTestByID(testID)
	if err := checkOwner(test, testID, teacherID); err != nil {
		return nil, err
	}
	return test, nil
}

// AssignTest назначает тест учителя его классу с указанным названием
func (s *TestService) AssignTest(ctx context.Context, teacherID, testID, className string) (*model.Class, error) {
	var class *model.Class
	err := docRepo.Update(ctx, s.gw, func(doc *model.Document) error {
		tests := repository.NewTestRepository(doc)
		test := tests.GetTestByID(testID)
		if err := checkOwner(test, testID, teacherID); err != nil {
			return err
		}
		class = classesRepo.NewClassRepository(doc, nil).GetTeacherClassByName(teacherID, className)
		if class == nil {
			return fmt.Errorf("%q: %w", className, model.ErrClassNotFound)
		}
		tests.AssignTestToClass(test, class.ID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign test: %w", err)
	}
	return class, nil
}

// GetClassTests возвращает тесты, назначенные классу
func (s *TestService) GetClassTests(ctx context.Context, classID string) ([]*model.Test, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tests: %w", err)
	}
	return doc.TestsByClass(classID), nil
}

// GetClassTest возвращает тест, если он назначен указанному классу
func (s *TestService) GetClassTest(ctx context.Context, classID, testID string) (*model.Test, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tests: %w", err)
	}
	test := repository.NewTestRepository(doc).GetTestByID(testID)
	if test == nil || !test.IsAssignedTo(classID) {
		return nil, fmt.Errorf("%s: %w", testID, model.ErrTestNotFound)
	}
	return test, nil
}

// checkOwner отличает отсутствующий тест от чужого
func checkOwner(test *model.Test, testID, teacherID string) error {
	if test == nil {
		return fmt.Errorf("%s: %w", testID, model.ErrTestNotFound)
	}
	if test.TeacherID != teacherID {
		return fmt.Errorf("test %s: %w", testID, model.ErrForbidden)
	}
	return nil
}
