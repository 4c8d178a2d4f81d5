package model

// Role представляет роль пользователя. Роль назначается при регистрации и больше не меняется.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Permission представляет право на выполнение команды из главного меню
type Permission string

const (
	PermCreateClass  Permission = "create_class"
	PermCreateTest   Permission = "create_test"
	PermViewTests    Permission = "view_tests"
	PermAssignTest   Permission = "assign_test"
	PermViewResults  Permission = "view_results"
	PermTakeTest     Permission = "take_test"
	PermViewOwnScore Permission = "view_own_results"
)

// Valid проверяет, что роль входит в перечень известных
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}
