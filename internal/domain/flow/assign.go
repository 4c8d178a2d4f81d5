package flow

import (
	"context"
	"errors"
	"fmt"

	msg "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

const (
	stepSelectTest = iota + 1
	stepSelectClass
)

func (m *Machine) startAssignTest(ctx context.Context, in Message, user *model.User) error {
	tests, err := m.Tests.GetTeacherTests(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(tests) == 0 {
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.NoTestsCreated))
	}
	m.States.Set(in.UserID, &AssignTestState{Step: stepSelectTest})
	return m.Transport.PromptWithOptions(ctx, in.ChatID, m.text(msg.SelectTestToAssign), testLabels(tests))
}

func (m *Machine) assignTestStep(ctx context.Context, in Message, st *AssignTestState) error {
	switch st.Step {
	case stepSelectTest:
		testID, ok := parseTestLabel(in.Text)
		if !ok {
			m.States.Set(in.UserID, st)
			return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.InvalidTestFormat))
		}
		if _, err := m.Tests.GetTeacherTest(ctx, in.UserID, testID); err != nil {
			if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrForbidden) {
				m.States.Set(in.UserID, st)
				return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.TestNotFound))
			}
			return err
		}

		classes, err := m.Classes.GetTeacherClasses(ctx, in.UserID)
		if err != nil {
			return err
		}
		if len(classes) == 0 {
			m.States.Delete(in.UserID)
			return m.Transport.ClearPrompt(ctx, in.ChatID, m.text(msg.NoClasses))
		}
		labels := make([]string, 0, len(classes))
		for _, c := range classes {
			labels = append(labels, classLabel(c))
		}
		st.Step = stepSelectClass
		st.TestID = testID
		m.States.Set(in.UserID, st)
		return m.Transport.PromptWithOptions(ctx, in.ChatID, m.text(msg.SelectClassToAssign), labels)

	case stepSelectClass:
		name, ok := parseClassLabel(in.Text)
		if !ok {
			m.States.Set(in.UserID, st)
			return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.InvalidClassFormat))
		}
		class, err := m.Tests.AssignTest(ctx, in.UserID, st.TestID, name)
		if errors.Is(err, model.ErrClassNotFound) {
			m.States.Set(in.UserID, st)
			return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.ClassNotFound))
		}
		if err != nil {
			return err
		}
		m.States.Delete(in.UserID)
		return m.Transport.ClearPrompt(ctx, in.ChatID, m.text(msg.TestAssigned, st.TestID, class.Name))
	}
	return fmt.Errorf("assign test: unexpected step %d", st.Step)
}
