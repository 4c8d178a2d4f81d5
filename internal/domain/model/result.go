package model

// Result представляет итог одной завершенной попытки прохождения теста.
// StudentName и TeacherID копируются в момент сохранения, чтобы отчеты строились без соединений.
type Result struct {
	ID           string        `json:"id"`
	StudentID    string        `json:"student_id"`
	StudentName  string        `json:"student_name"`
	TestID       string        `json:"test_id"`
	CorrectCount int           `json:"correct_answers"`
	TotalCount   int           `json:"total_questions"`
	WrongAnswers []WrongAnswer `json:"wrong_answers"`
	TeacherID    string        `json:"teacher_id"`
}
