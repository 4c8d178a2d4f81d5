package model

// Class представляет учебный класс. Владелец класса - учитель TeacherID.
// Ученики присоединяются к классу только по коду доступа.
type Class struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	TeacherID  string   `json:"teacher_id"`
	AccessCode string   `json:"access_code"`
	StudentIDs []string `json:"students"`
}

// HasStudent проверяет, состоит ли ученик в классе
func (c *Class) HasStudent(studentID string) bool {
	for _, id := range c.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
