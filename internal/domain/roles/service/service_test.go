package service

import (
	"slices"
	"testing"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/roles/repository"
)

func TestHasPermission(t *testing.T) {
	svc := NewRoleService(repository.NewRolePermissionRepository())
	teacher := &model.User{ID: "1", Role: model.RoleTeacher}
	student := &model.User{ID: "2", Role: model.RoleStudent}

	tests := []struct {
		name string
		user *model.User
		perm model.Permission
		want bool
	}{
		{"учитель создает класс", teacher, model.PermCreateClass, true},
		{"учитель не проходит тесты", teacher, model.PermTakeTest, false},
		{"ученик проходит тесты", student, model.PermTakeTest, true},
		{"ученик не назначает тесты", student, model.PermAssignTest, false},
		{"незарегистрированный", nil, model.PermTakeTest, false},
		{"неизвестная роль", &model.User{ID: "3", Role: "admin"}, model.PermCreateClass, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.HasPermission(tt.user, tt.perm); got != tt.want {
				t.Errorf("HasPermission = %v, ожидалось %v", got, tt.want)
			}
		})
	}
}

func TestGetRoleBasedMenu(t *testing.T) {
	svc := NewRoleService(repository.NewRolePermissionRepository())

	teacherMenu := svc.GetRoleBasedMenu(&model.User{Role: model.RoleTeacher})
	want := []string{model.ButtonCreateClass, model.ButtonCreateTest, model.ButtonViewTests, model.ButtonAssignTest, model.ButtonViewResults}
	if !slices.Equal(teacherMenu, want) {
		t.Errorf("Меню учителя %v, ожидалось %v", teacherMenu, want)
	}

	studentMenu := svc.GetRoleBasedMenu(&model.User{Role: model.RoleStudent})
	if !slices.Equal(studentMenu, []string{model.ButtonMyTests, model.ButtonMyResults}) {
		t.Errorf("Неверное меню ученика: %v", studentMenu)
	}
	if svc.GetRoleBasedMenu(nil) != nil {
		t.Errorf("У незарегистрированного пользователя не должно быть меню")
	}
}
