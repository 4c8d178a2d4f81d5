package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/IT-Nick/quizbot/internal/domain/classes/repository"
	docRepo "github.com/IT-Nick/quizbot/internal/domain/document/repository"
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// ClassService для работы с классами
type ClassService struct {
	gw         docRepo.Gateway
	minNameLen int
	newCode    repository.CodeGenerator
}

// NewClassService создает новый экземпляр ClassService. newCode может быть nil.
func NewClassService(gw docRepo.Gateway, minNameLen int, newCode repository.CodeGenerator) *ClassService {
	return &ClassService{gw: gw, minNameLen: minNameLen, newCode: newCode}
}

// CreateClass создает класс учителя со свежим id и кодом доступа
func (s *ClassService) CreateClass(ctx context.Context, teacherID, name string) (*model.Class, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < s.minNameLen {
		return nil, fmt.Errorf("class name %q is shorter than %d: %w", name, s.minNameLen, model.ErrInvalidInput)
	}
	var class *model.Class
	err := docRepo.Update(ctx, s.gw, func(doc *model.Document) error {
		var err error
		class, err = repository.NewClassRepository(doc, s.newCode).CreateClass(teacherID, name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create class: %w", err)
	}
	return class, nil
}

// GetTeacherClasses возвращает классы учителя в порядке создания
func (s *ClassService) GetTeacherClasses(ctx context.Context, teacherID string) ([]*model.Class, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load classes: %w", err)
	}
	return doc.ClassesByTeacher(teacherID), nil
}

// GetTeacherClassByName ищет класс среди классов учителя
func (s *ClassService) GetTeacherClassByName(ctx context.Context, teacherID, name string) (*model.Class, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load classes: %w", err)
	}
	class := repository.NewClassRepository(doc, nil).GetTeacherClassByName(teacherID, name)
	if class == nil {
		return nil, fmt.Errorf("%q: %w", name, model.ErrClassNotFound)
	}
	return class, nil
}
