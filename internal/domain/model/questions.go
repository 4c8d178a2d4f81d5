package model

// OptionsPerQuestion - число вариантов ответа в каждом вопросе
const OptionsPerQuestion = 4

// Question представляет вопрос теста с четырьмя вариантами ответа
type Question struct {
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct"`
	Explanation  string   `json:"explanation,omitempty"`
}

// CorrectOption возвращает текст правильного варианта
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// Option возвращает текст варианта по индексу (с нуля) и признак его существования
func (q Question) Option(i int) (string, bool) {
	if i < 0 || i >= len(q.Options) {
		return "", false
	}
	return q.Options[i], true
}
