package repository

import (
	"fmt"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// RolePermissionRepository хранит права ролей. Набор ролей фиксирован и не меняется во время работы.
type RolePermissionRepository struct {
	permissions map[model.Role][]model.Permission
}

// NewRolePermissionRepository создает репозиторий с правами по умолчанию
func NewRolePermissionRepository() *RolePermissionRepository {
	return &RolePermissionRepository{
		permissions: map[model.Role][]model.Permission{
			model.RoleTeacher: {
				model.PermCreateClass,
				model.PermCreateTest,
				model.PermViewTests,
				model.PermAssignTest,
				model.PermViewResults,
			},
			model.RoleStudent: {
				model.PermTakeTest,
				model.PermViewOwnScore,
			},
		},
	}
}

// GetPermissionsByRole возвращает права роли в порядке показа в меню
func (r *RolePermissionRepository) GetPermissionsByRole(role model.Role) ([]model.Permission, error) {
	perms, ok := r.permissions[role]
	if !ok {
		return nil, fmt.Errorf("role %q not found", role)
	}
	return perms, nil
}
