package service

import (
	"context"
	"fmt"

	classesRepo "github.com/IT-Nick/quizbot/internal/domain/classes/repository"
	docRepo "github.com/IT-Nick/quizbot/internal/domain/document/repository"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/users/repository"
)

// UserService содержит логику регистрации пользователей
type UserService struct {
	gw        docRepo.Gateway
	adminCode string
}

// NewUserService создает новый экземпляр UserService
func NewUserService(gw docRepo.Gateway, adminCode string) *UserService {
	return &UserService{gw: gw, adminCode: adminCode}
}

// GetUserByID возвращает пользователя или nil, если он не зарегистрирован
func (s *UserService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return repository.NewUserRepository(doc).GetUserByID(id), nil
}

// RegisterTeacher регистрирует учителя по общему коду администратора.
// Сначала проверяется код, затем повторная регистрация.
func (s *UserService) RegisterTeacher(ctx context.Context, id, name, code string) (*model.User, error) {
	if s.adminCode == "" || code != s.adminCode {
		return nil, fmt.Errorf("admin code: %w", model.ErrInvalidInput)
	}
	var user *model.User
	err := docRepo.Update(ctx, s.gw, func(doc *model.Document) error {
		user = &model.User{ID: id, Role: model.RoleTeacher, DisplayName: name}
		return repository.NewUserRepository(doc).CreateUser(user)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register teacher: %w", err)
	}
	return user, nil
}

// RegisterStudent регистрирует ученика и добавляет его в класс с указанным кодом доступа
func (s *UserService) RegisterStudent(ctx context.Context, id, name, accessCode string) (*model.Class, error) {
	var class *model.Class
	err := docRepo.Update(ctx, s.gw, func(doc *model.Document) error {
		classes := classesRepo.NewClassRepository(doc, nil)
		class = classes.GetClassByAccessCode(accessCode)
		if class == nil {
			return fmt.Errorf("access code: %w", model.ErrInvalidInput)
		}
		user := &model.User{ID: id, Role: model.RoleStudent, DisplayName: name, ClassID: class.ID}
		if err := repository.NewUserRepository(doc).CreateUser(user); err != nil {
			return err
		}
		classes.AddStudent(class, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register student: %w", err)
	}
	return class, nil
}
