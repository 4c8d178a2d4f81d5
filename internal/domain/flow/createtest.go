package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	msg "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/report"
	"github.com/IT-Nick/quizbot/internal/infra/worker"
)

const (
	stepTopic = iota + 1
	stepCount
	stepDifficulty
)

func (m *Machine) startCreateTest(ctx context.Context, in Message, _ *model.User) error {
	m.States.Set(in.UserID, &CreateTestState{Step: stepTopic})
	return m.Transport.ClearPrompt(ctx, in.ChatID, m.text(msg.EnterTopic))
}

func (m *Machine) createTestStep(ctx context.Context, in Message, st *CreateTestState) error {
	switch st.Step {
	case stepTopic:
		if in.Text == "" {
			m.States.Set(in.UserID, st)
			return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.EnterTopic))
		}
		st.Topic = in.Text
		st.Step = stepCount
		m.States.Set(in.UserID, st)
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.EnterCount))

	case stepCount:
		count, err := strconv.Atoi(in.Text)
		if err != nil || count < 1 || count > m.Settings.MaxRequested {
			m.States.Set(in.UserID, st)
			return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.InvalidCount, m.Settings.MaxRequested))
		}
		st.Count = count
		st.Step = stepDifficulty
		m.States.Set(in.UserID, st)
		return m.Transport.PromptWithOptions(ctx, in.ChatID, m.text(msg.EnterDifficulty), difficultyLabels())

	case stepDifficulty:
		// Caser не потокобезопасен, поэтому создается на каждый вызов
		difficulty, ok := model.ParseDifficulty(cases.Lower(language.Russian).String(in.Text))
		if !ok {
			m.States.Set(in.UserID, st)
			return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.InvalidDifficulty))
		}
		m.States.Delete(in.UserID)
		if err := m.Transport.ClearPrompt(ctx, in.ChatID, m.text(msg.GenerationStarted)); err != nil {
			return err
		}
		return m.submitCreateTest(in, st.Topic, st.Count, difficulty)
	}
	return fmt.Errorf("create test: unexpected step %d", st.Step)
}

// submitCreateTest запускает генерацию в фоне. Результат приходит пользователю отдельным сообщением.
func (m *Machine) submitCreateTest(in Message, topic string, count int, difficulty model.Difficulty) error {
	var created *model.Test
	_, err := m.Jobs.Submit(worker.Job{
		Kind: "create_test",
		Run: func(ctx context.Context) error {
			test, err := m.Tests.CreateTest(ctx, in.UserID, topic, count, difficulty)
			if err != nil {
				return err
			}
			created = test
			return nil
		},
		OnDone: func(err error) {
			ctx := context.Background()
			text := m.text(msg.GenerationFailed)
			if err == nil {
				text = report.FormatCreatedTest(created)
			}
			for _, part := range report.Paginate(text, m.Settings.MessageLimit) {
				if sendErr := m.Transport.SendMessage(ctx, in.ChatID, part); sendErr != nil {
					slog.Error("failed to deliver test creation outcome", "user_id", in.UserID, "error", sendErr)
					return
				}
			}
		},
	})
	if err != nil {
		return fmt.Errorf("failed to submit test generation: %w", err)
	}
	return nil
}

func difficultyLabels() []string {
	labels := make([]string, 0, len(model.Difficulties))
	for _, d := range model.Difficulties {
		labels = append(labels, d.Label())
	}
	return labels
}

func (m *Machine) viewTests(ctx context.Context, in Message, user *model.User) error {
	text, n, err := m.Reports.TeacherTests(ctx, user.ID)
	if err != nil {
		return err
	}
	if n == 0 {
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.NoTestsCreated))
	}
	return m.sendLong(ctx, in.ChatID, text)
}
