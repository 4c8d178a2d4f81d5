package quiz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// ErrInvalidAnswer - ответ не является номером одного из вариантов.
// Такой ответ прерывает попытку целиком.
var ErrInvalidAnswer = errors.New("invalid answer")

// Session - состояние одной попытки прохождения теста учеником
type Session struct {
	TestID       string
	CurrentIndex int
	Answers      []int
	WrongAnswers []model.WrongAnswer

	questions []model.Question
}

// NewSession начинает попытку с первого вопроса
func NewSession(test *model.Test) (*Session, error) {
	if len(test.Questions) == 0 {
		return nil, fmt.Errorf("test %s has no questions", test.ID)
	}
	return &Session{
		TestID:       test.ID,
		Answers:      make([]int, 0, len(test.Questions)),
		WrongAnswers: make([]model.WrongAnswer, 0),
		questions:    test.Questions,
	}, nil
}

// Current возвращает текущий вопрос и его номер (с единицы)
func (s *Session) Current() (model.Question, int) {
	return s.questions[s.CurrentIndex], s.CurrentIndex + 1
}

// Done сообщает, что на все вопросы получены ответы
func (s *Session) Done() bool {
	return s.CurrentIndex >= len(s.questions)
}

// ParseAnswer переводит номер варианта (с единицы) в индекс (с нуля) для вопроса q
func ParseAnswer(input string, q model.Question) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAnswer, input)
	}
	idx := n - 1
	if _, ok := q.Option(idx); !ok {
		return 0, fmt.Errorf("%w: option %d out of range 1..%d", ErrInvalidAnswer, n, len(q.Options))
	}
	return idx, nil
}

// Answer записывает ответ на текущий вопрос и переходит к следующему.
// Неверный ввод возвращает ErrInvalidAnswer и не меняет состояние.
func (s *Session) Answer(input string) error {
	if s.Done() {
		return fmt.Errorf("%w: session already finished", ErrInvalidAnswer)
	}

	q, _ := s.Current()
	idx, err := ParseAnswer(input, q)
	if err != nil {
		return err
	}

	s.Answers = append(s.Answers, idx)
	if idx != q.CorrectIndex {
		chosen, _ := q.Option(idx)
		s.WrongAnswers = append(s.WrongAnswers, model.WrongAnswer{
			Question:      q.Text,
			UserAnswer:    chosen,
			CorrectAnswer: q.CorrectOption(),
			CorrectIndex:  q.CorrectIndex,
		})
	}
	s.CurrentIndex++
	return nil
}

// Score пересчитывает число правильных ответов по записанным ответам и ключам вопросов
func Score(questions []model.Question, answers []int) int {
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectIndex {
			correct++
		}
	}
	return correct
}

// Result формирует итог завершенной попытки. ID результата назначает хранилище.
func (s *Session) Result(student *model.User, test *model.Test) (*model.Result, error) {
	if !s.Done() {
		return nil, fmt.Errorf("session for test %s is not finished: %d of %d answered", s.TestID, len(s.Answers), len(s.questions))
	}
	wrong := make([]model.WrongAnswer, len(s.WrongAnswers))
	copy(wrong, s.WrongAnswers)

	return &model.Result{
		StudentID:    student.ID,
		StudentName:  student.DisplayName,
		TestID:       test.ID,
		CorrectCount: Score(s.questions, s.Answers),
		TotalCount:   len(s.questions),
		WrongAnswers: wrong,
		TeacherID:    test.TeacherID,
	}, nil
}
