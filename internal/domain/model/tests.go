package model

import "strings"

// Difficulty - уровень сложности теста
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties перечисляет уровни сложности в порядке показа пользователю
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

var difficultyLabels = map[Difficulty]string{
	DifficultyEasy:   "легкий",
	DifficultyMedium: "средний",
	DifficultyHard:   "сложный",
}

// Label возвращает название уровня сложности для пользователя
func (d Difficulty) Label() string {
	if l, ok := difficultyLabels[d]; ok {
		return l
	}
	return string(d)
}

// ParseDifficulty разбирает уровень сложности по названию (русскому или английскому).
// Входная строка должна быть уже приведена к нижнему регистру.
func ParseDifficulty(s string) (Difficulty, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Difficulties {
		if s == string(d) || s == difficultyLabels[d] {
			return d, true
		}
	}
	return "", false
}

// Test представляет сгенерированный тест. ClassID пуст, пока тест не назначен классу.
type Test struct {
	ID         string     `json:"id"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Questions  []Question `json:"questions"`
	TeacherID  string     `json:"teacher_id"`
	ClassID    *string    `json:"class_id"`
}

// IsAssignedTo проверяет, назначен ли тест указанному классу
func (t *Test) IsAssignedTo(classID string) bool {
	return t.ClassID != nil && classID != "" && *t.ClassID == classID
}
