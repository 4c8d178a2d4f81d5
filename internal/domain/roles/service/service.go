package service

import (
	"slices"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/roles/repository"
)

// menuButtons сопоставляет права с кнопками главного меню
var menuButtons = map[model.Permission]string{
	model.PermCreateClass:  model.ButtonCreateClass,
	model.PermCreateTest:   model.ButtonCreateTest,
	model.PermViewTests:    model.ButtonViewTests,
	model.PermAssignTest:   model.ButtonAssignTest,
	model.PermViewResults:  model.ButtonViewResults,
	model.PermTakeTest:     model.ButtonMyTests,
	model.PermViewOwnScore: model.ButtonMyResults,
}

// RoleService для работы с ролями и правами
type RoleService struct {
	rolePermissionRepo *repository.RolePermissionRepository
}

// NewRoleService создает новый экземпляр RoleService
func NewRoleService(rolePermissionRepo *repository.RolePermissionRepository) *RoleService {
	return &RoleService{rolePermissionRepo: rolePermissionRepo}
}

// HasPermission проверяет, есть ли у пользователя право. Незарегистрированный пользователь прав не имеет.
func (s *RoleService) HasPermission(user *model.User, perm model.Permission) bool {
	if user == nil {
		return false
	}
	perms, err := s.rolePermissionRepo.GetPermissionsByRole(user.Role)
	if err != nil {
		return false
	}
	return slices.Contains(perms, perm)
}

// GetRoleBasedMenu возвращает кнопки главного меню для роли пользователя
func (s *RoleService) GetRoleBasedMenu(user *model.User) []string {
	if user == nil {
		return nil
	}
	perms, err := s.rolePermissionRepo.GetPermissionsByRole(user.Role)
	if err != nil {
		return nil
	}
	menu := make([]string, 0, len(perms))
	for _, p := range perms {
		if b, ok := menuButtons[p]; ok {
			menu = append(menu, b)
		}
	}
	return menu
}
