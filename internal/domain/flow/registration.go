package flow

import (
	"context"
	"errors"

	msg "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

func (m *Machine) startRegistration(ctx context.Context, in Message, role model.Role) error {
	user, err := m.Users.GetUserByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if user != nil {
		m.States.Delete(in.UserID)
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.AlreadyRegistered))
	}

	m.States.Set(in.UserID, &RegistrationState{Role: role})
	prompt := msg.EnterAccessCode
	if role == model.RoleTeacher {
		prompt = msg.EnterAdminCode
	}
	return m.Transport.SendMessage(ctx, in.ChatID, m.text(prompt))
}

func (m *Machine) registrationStep(ctx context.Context, in Message, st *RegistrationState) error {
	var (
		user *model.User
		done string
		err  error
	)
	switch st.Role {
	case model.RoleTeacher:
		user, err = m.Users.RegisterTeacher(ctx, in.UserID, in.DisplayName, in.Text)
		done = m.text(msg.RegisteredTeacher)
	default:
		var class *model.Class
		class, err = m.Users.RegisterStudent(ctx, in.UserID, in.DisplayName, in.Text)
		if err == nil {
			user = &model.User{ID: in.UserID, Role: model.RoleStudent, DisplayName: in.DisplayName, ClassID: class.ID}
			done = m.text(msg.JoinedClass, class.Name)
		}
	}

	switch {
	case errors.Is(err, model.ErrInvalidInput):
		m.States.Set(in.UserID, st)
		if st.Role == model.RoleTeacher {
			return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.InvalidAdminCode))
		}
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.InvalidAccessCode))
	case errors.Is(err, model.ErrAlreadyRegistered):
		m.States.Delete(in.UserID)
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.AlreadyRegistered))
	case err != nil:
		return err
	}

	m.States.Delete(in.UserID)
	if err := m.Transport.SendMessage(ctx, in.ChatID, done); err != nil {
		return err
	}
	return m.showMenu(ctx, in.ChatID, user)
}
