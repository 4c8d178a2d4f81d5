package dto

// ClassReportResponse структура для отчета учителя по классу
type ClassReportResponse struct {
	ClassID   string          `json:"class_id"`
	ClassName string          `json:"class_name"`
	Students  []StudentReport `json:"students"`
}

// StudentReport результаты одного ученика
type StudentReport struct {
	StudentID   string       `json:"student_id"`
	StudentName string       `json:"student_name"`
	Results     []TestResult `json:"results"`
}

type TestResult struct {
	ResultID  string        `json:"result_id"`
	TestID    string        `json:"test_id"`
	TestTopic string        `json:"test_topic"`
	Correct   int           `json:"correct_answers"`
	Total     int           `json:"total_questions"`
	Mistakes  []MistakeInfo `json:"mistakes"`
}

type MistakeInfo struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
}
