package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	classesService "github.com/IT-Nick/quizbot/internal/domain/classes/service"
	msg "github.com/IT-Nick/quizbot/internal/domain/messages/service"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/report"
	resultsService "github.com/IT-Nick/quizbot/internal/domain/results/service"
	rolesService "github.com/IT-Nick/quizbot/internal/domain/roles/service"
	testsService "github.com/IT-Nick/quizbot/internal/domain/tests/service"
	usersService "github.com/IT-Nick/quizbot/internal/domain/users/service"
	"github.com/IT-Nick/quizbot/internal/infra/worker"
)

// Submitter запускает фоновые задачи
type Submitter interface {
	Submit(job worker.Job) (string, error)
}

// Hinter генерирует подсказку к ошибке ученика
type Hinter interface {
	Hint(ctx context.Context, question, wrongAnswer string) (string, error)
}

// Settings - ограничения диалогов
type Settings struct {
	MaxRequested int
	MessageLimit int
}

// Deps - зависимости машины состояний. Hints может быть nil.
type Deps struct {
	Users     *usersService.UserService
	Classes   *classesService.ClassService
	Tests     *testsService.TestService
	Results   *resultsService.ResultService
	Reports   *report.Service
	Roles     *rolesService.RoleService
	Messages  *msg.MessageService
	Jobs      Submitter
	Hints     Hinter
	Transport Transport
	States    *StateStore
	Settings  Settings
}

type command struct {
	perm    model.Permission
	handler func(m *Machine, ctx context.Context, in Message, user *model.User) error
}

// commands - словарь команд главного меню
var commands = map[string]command{
	model.ButtonCreateClass: {model.PermCreateClass, (*Machine).startCreateClass},
	model.ButtonCreateTest:  {model.PermCreateTest, (*Machine).startCreateTest},
	model.ButtonViewTests:   {model.PermViewTests, (*Machine).viewTests},
	model.ButtonAssignTest:  {model.PermAssignTest, (*Machine).startAssignTest},
	model.ButtonViewResults: {model.PermViewResults, (*Machine).startViewResults},
	model.ButtonMyTests:     {model.PermTakeTest, (*Machine).startTakingTest},
	model.ButtonMyResults:   {model.PermViewOwnScore, (*Machine).myResults},
}

// Machine маршрутизирует входящие события по активному диалогу пользователя или по командам меню
type Machine struct {
	Deps
	locks *userLocks
}

// NewMachine создает машину состояний
func NewMachine(deps Deps) *Machine {
	if deps.Settings.MessageLimit <= 0 {
		deps.Settings.MessageLimit = report.MessageLimit
	}
	return &Machine{Deps: deps, locks: newUserLocks()}
}

// OnMessage обрабатывает текстовое сообщение пользователя
func (m *Machine) OnMessage(ctx context.Context, in Message) error {
	unlock := m.locks.lock(in.UserID)
	defer unlock()

	in.Text = strings.TrimSpace(in.Text)

	switch in.Text {
	case model.CommandCancel, model.ButtonCancel:
		m.States.Delete(in.UserID)
		return m.Transport.ClearPrompt(ctx, in.ChatID, m.text(msg.Cancelled))
	case model.CommandStart:
		m.States.Delete(in.UserID)
		return m.start(ctx, in)
	}

	if st, ok := m.States.Get(in.UserID); ok {
		return m.step(ctx, in, st)
	}

	user, err := m.Users.GetUserByID(ctx, in.UserID)
	if err != nil {
		return m.fail(ctx, in, err)
	}

	cmd, ok := commands[in.Text]
	if !ok {
		if user == nil {
			return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.NotRegistered))
		}
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(msg.UnknownCommand))
	}
	if !m.Roles.HasPermission(user, cmd.perm) {
		return m.Transport.SendMessage(ctx, in.ChatID, m.text(permissionMessage(cmd.perm)))
	}
	if err := cmd.handler(m, ctx, in, user); err != nil {
		return m.fail(ctx, in, err)
	}
	return nil
}

// OnSelection обрабатывает нажатие кнопки с токеном
func (m *Machine) OnSelection(ctx context.Context, in Message) error {
	unlock := m.locks.lock(in.UserID)
	defer unlock()

	var role model.Role
	switch in.Text {
	case model.SelectRoleTeacher:
		role = model.RoleTeacher
	case model.SelectRoleStudent:
		role = model.RoleStudent
	default:
		slog.Debug("unknown selection token", "user_id", in.UserID, "token", in.Text)
		return nil
	}
	if err := m.startRegistration(ctx, in, role); err != nil {
		return m.fail(ctx, in, err)
	}
	return nil
}

// step передает сообщение обработчику активного диалога
func (m *Machine) step(ctx context.Context, in Message, st State) error {
	var err error
	switch s := st.(type) {
	case *RegistrationState:
		err = m.registrationStep(ctx, in, s)
	case *CreateClassState:
		err = m.createClassStep(ctx, in)
	case *CreateTestState:
		err = m.createTestStep(ctx, in, s)
	case *AssignTestState:
		err = m.assignTestStep(ctx, in, s)
	case *ViewResultsState:
		err = m.viewResultsStep(ctx, in)
	case *TakingTestState:
		err = m.takingTestStep(ctx, in, s)
	default:
		err = fmt.Errorf("unknown state %T", st)
	}
	if err != nil {
		slog.Warn("flow step failed", "user_id", in.UserID, "flow", st.flowName(), "error", err)
		return m.fail(ctx, in, err)
	}
	return nil
}

// fail сообщает пользователю об ошибке и сбрасывает только активный диалог
func (m *Machine) fail(ctx context.Context, in Message, err error) error {
	m.States.Delete(in.UserID)
	slog.Error("failed to handle message", "user_id", in.UserID, "error", err)
	if sendErr := m.Transport.ClearPrompt(ctx, in.ChatID, m.text(msg.GenericError)); sendErr != nil {
		return errors.Join(err, sendErr)
	}
	return nil
}

func (m *Machine) start(ctx context.Context, in Message) error {
	user, err := m.Users.GetUserByID(ctx, in.UserID)
	if err != nil {
		return m.fail(ctx, in, err)
	}
	if user == nil {
		return m.Transport.PromptChoice(ctx, in.ChatID, m.text(msg.Welcome, in.DisplayName), []Choice{
			{Label: m.text(msg.RoleTeacher), Token: model.SelectRoleTeacher},
			{Label: m.text(msg.RoleStudent), Token: model.SelectRoleStudent},
		})
	}
	return m.showMenu(ctx, in.ChatID, user)
}

func (m *Machine) showMenu(ctx context.Context, chatID string, user *model.User) error {
	return m.Transport.PromptWithOptions(ctx, chatID, m.text(msg.MainMenu), m.Roles.GetRoleBasedMenu(user))
}

// sendLong отправляет длинный текст частями по порядку. Первая часть убирает клавиатуру.
func (m *Machine) sendLong(ctx context.Context, chatID, text string) error {
	for i, part := range report.Paginate(text, m.Settings.MessageLimit) {
		var err error
		if i == 0 {
			err = m.Transport.ClearPrompt(ctx, chatID, part)
		} else {
			err = m.Transport.SendMessage(ctx, chatID, part)
		}
		if err != nil {
			return fmt.Errorf("failed to send part %d: %w", i+1, err)
		}
	}
	return nil
}

func (m *Machine) text(key string, args ...any) string {
	return m.Messages.Text(key, args...)
}

func permissionMessage(perm model.Permission) string {
	switch perm {
	case model.PermTakeTest, model.PermViewOwnScore:
		return msg.StudentOnly
	default:
		return msg.TeacherOnly
	}
}
