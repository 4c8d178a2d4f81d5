package model

// User представляет зарегистрированного пользователя бота.
// ID совпадает с идентификатором пользователя в транспорте (для Telegram - user id в виде строки).
type User struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	DisplayName string `json:"username"`
	ClassID     string `json:"class_id,omitempty"` // только для учеников
}

// IsTeacher сообщает, является ли пользователь учителем
func (u *User) IsTeacher() bool {
	return u != nil && u.Role == RoleTeacher
}

// IsStudent сообщает, является ли пользователь учеником
func (u *User) IsStudent() bool {
	return u != nil && u.Role == RoleStudent
}
