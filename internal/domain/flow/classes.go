package flow

import (
	"context"
	"errors"

	msg "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

func (m *Machine) startCreateClass(ctx context.Context, in Message, _ *model.User) error {
	m.States.Set(in.UserID, &CreateClassState{})
	return m.Transport.ClearPrompt(ctx, in.ChatID, m.text(msg.EnterClassName))
}

func (m *Machine) createClassStep(ctx context.Context, in Message) error {
	class, err := m.Classes.CreateClass(ctx, in.UserID, in.Text)
	if errors.Is(err, model.ErrInvalidInput) {
		m.States.Set(in.UserID, &CreateClassState{})
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.ClassNameTooShort))
	}
	if err != nil {
		return err
	}
	m.States.Delete(in.UserID)
	return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.ClassCreated, class.Name, class.ID, class.AccessCode))
}
