package flow

import (
	"context"
	"errors"
	"strings"

	msg "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/report"
)

func (m *Machine) startViewResults(ctx context.Context, in Message, user *model.User) error {
	classes, err := m.Classes.GetTeacherClasses(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(classes) == 0 {
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.NoClasses))
	}
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
	}
	m.States.Set(in.UserID, &ViewResultsState{})
	return m.Transport.PromptWithOptions(ctx, in.ChatID, m.text(msg.SelectClassResults), names)
}

func (m *Machine) viewResultsStep(ctx context.Context, in Message) error {
	name := strings.TrimSpace(strings.TrimPrefix(in.Text, model.ClassLabelPrefix))
	class, err := m.Classes.GetTeacherClassByName(ctx, in.UserID, name)
	if errors.Is(err, model.ErrNotFound) {
		m.States.Set(in.UserID, &ViewResultsState{})
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.ClassNotFound))
	}
	if err != nil {
		return err
	}

	m.States.Delete(in.UserID)
	if len(class.StudentIDs) == 0 {
		return m.Transport.ClearPrompt(ctx, in.ChatID, m.text(msg.ClassHasNoStudents, class.Name))
	}
	r, err := m.Reports.ClassReport(ctx, in.UserID, class.ID)
	if err != nil {
		return err
	}
	return m.sendLong(ctx, in.ChatID, report.FormatClassReport(r))
}

func (m *Machine) myResults(ctx context.Context, in Message, user *model.User) error {
	r, err := m.Reports.StudentResults(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(r.Results) == 0 {
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.NoResults))
	}
	return m.sendLong(ctx, in.ChatID, report.FormatStudentResults(r))
}
