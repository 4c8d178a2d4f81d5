package flow

import (
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/quiz"
)

// State - состояние активного диалога пользователя.
// Набор реализаций закрыт: новые сценарии добавляются только в этом пакете.
type State interface {
	flowName() string
}

// RegistrationState - пользователь выбрал роль и вводит код
type RegistrationState struct {
	Role model.Role
}

// CreateClassState - учитель вводит название класса
type CreateClassState struct{}

// CreateTestState - учитель вводит тему, количество вопросов и сложность
type CreateTestState struct {
	Step  int
	Topic string
	Count int
}

// AssignTestState - учитель выбирает тест, затем класс
type AssignTestState struct {
	Step   int
	TestID string
}

// ViewResultsState - учитель выбирает класс для отчета
type ViewResultsState struct{}

// TakingTestState - ученик выбирает тест (шаг 1) и отвечает на вопросы (шаг 2)
type TakingTestState struct {
	Step    int
	Test    *model.Test
	Session *quiz.Session
}

func (*RegistrationState) flowName() string { return "registration" }
func (*CreateClassState) flowName() string  { return "create_class" }
func (*CreateTestState) flowName() string   { return "create_test" }
func (*AssignTestState) flowName() string   { return "assign_test" }
func (*ViewResultsState) flowName() string  { return "view_results" }
func (*TakingTestState) flowName() string   { return "taking_test" }
