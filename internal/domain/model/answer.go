package model

// WrongAnswer описывает ошибку ученика в одном вопросе
type WrongAnswer struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	CorrectIndex  int    `json:"correct_index"`
}
