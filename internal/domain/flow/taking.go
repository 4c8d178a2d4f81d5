package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	msg "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/quiz"
	"github.com/IT-Nick/quizbot/internal/domain/report"
	"github.com/IT-Nick/quizbot/internal/infra/worker"
)

const (
	stepChooseTest = iota + 1
	stepAnswering
)

func (m *Machine) startTakingTest(ctx context.Context, in Message, user *model.User) error {
	if user.ClassID == "" {
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.NotInClass))
	}
	tests, err := m.Tests.GetClassTests(ctx, user.ClassID)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.NoAssignedTests))
	}
	m.States.Set(in.UserID, &TakingTestState{Step: stepChooseTest})
	return m.Transport.PromptWithOptions(ctx, in.ChatID, m.text(msg.SelectTestToTake), testLabels(tests))
}

func (m *Machine) takingTestStep(ctx context.Context, in Message, st *TakingTestState) error {
	switch st.Step {
	case stepChooseTest:
		return m.chooseTest(ctx, in, st)
	case stepAnswering:
		return m.answer(ctx, in, st)
	}
	return fmt.Errorf("taking test: unexpected step %d", st.Step)
}

func (m *Machine) chooseTest(ctx context.Context, in Message, st *TakingTestState) error {
	testID, ok := parseTestLabel(in.Text)
	if !ok {
		m.States.Set(in.UserID, st)
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.InvalidTestFormat))
	}
	user, err := m.Users.GetUserByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", in.UserID, model.ErrUserNotFound)
	}
	test, err := m.Tests.GetClassTest(ctx, user.ClassID, testID)
	if errors.Is(err, model.ErrNotFound) {
		m.States.Set(in.UserID, st)
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.TestNotFound))
	}
	if err != nil {
		return err
	}

	session, err := quiz.NewSession(test)
	if err != nil {
		m.States.Delete(in.UserID)
		return m.Transport.ClearPrompt(ctx, in.ChatID, m.text(msg.TestHasNoQuestions))
	}
	st.Step = stepAnswering
	st.Test = test
	st.Session = session
	m.States.Set(in.UserID, st)

	q, n := session.Current()
	return m.Transport.ClearPrompt(ctx, in.ChatID, report.FormatQuestion(q, n))
}

// answer принимает ответ на текущий вопрос. Неверный ввод прерывает попытку без сохранения результата.
func (m *Machine) answer(ctx context.Context, in Message, st *TakingTestState) error {
	if err := st.Session.Answer(in.Text); err != nil {
		m.States.Delete(in.UserID)
		if errors.Is(err, quiz.ErrInvalidAnswer) {
			return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.InvalidAnswer))
		}
		return err
	}

	if !st.Session.Done() {
		m.States.Set(in.UserID, st)
		q, n := st.Session.Current()
		return m.Transport.SendMessage(ctx, in.ChatID, report.FormatQuestion(q, n))
	}

	m.States.Delete(in.UserID)
	user, err := m.Users.GetUserByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", in.UserID, model.ErrUserNotFound)
	}
	result, err := st.Session.Result(user, st.Test)
	if err != nil {
		return err
	}
	saved, err := m.Results.SaveResult(ctx, result)
	if err != nil {
		return err
	}
	if err := m.sendLong(ctx, in.ChatID, report.FormatAttemptSummary(saved)); err != nil {
		return err
	}
	m.submitHints(in, saved.WrongAnswers)
	return nil
}

// submitHints запрашивает подсказки к ошибкам в фоне. Неудача только логируется.
func (m *Machine) submitHints(in Message, mistakes []model.WrongAnswer) {
	if m.Hints == nil || len(mistakes) == 0 {
		return
	}
	var hints []string
	_, err := m.Jobs.Submit(worker.Job{
		Kind: "mistake_hints",
		Run: func(ctx context.Context) error {
			hints = hints[:0]
			for i, w := range mistakes {
				hint, err := m.Hints.Hint(ctx, w.Question, w.UserAnswer)
				if err != nil {
					return fmt.Errorf("hint for mistake %d: %w", i+1, err)
				}
				hints = append(hints, fmt.Sprintf("%d. %s", i+1, hint))
			}
			return nil
		},
		OnDone: func(err error) {
			if err != nil {
				return
			}
			text := m.text(msg.HintsHeader) + "\n" + strings.Join(hints, "\n")
			for _, part := range report.Paginate(text, m.Settings.MessageLimit) {
				if sendErr := m.Transport.SendMessage(context.Background(), in.ChatID, part); sendErr != nil {
					slog.Error("failed to deliver hints", "user_id", in.UserID, "error", sendErr)
					return
				}
			}
		},
	})
	if err != nil {
		slog.Warn("failed to submit hints job", "user_id", in.UserID, "error", err)
	}
}
