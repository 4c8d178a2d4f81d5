package dto

// StudentResultsResponse структура для истории результатов ученика
type StudentResultsResponse struct {
	StudentID   string       `json:"student_id"`
	StudentName string       `json:"student_name"`
	ClassID     string       `json:"class_id,omitempty"`
	Results     []TestResult `json:"results"`
}
