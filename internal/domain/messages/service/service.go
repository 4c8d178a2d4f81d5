package service

import (
	"fmt"
	"log/slog"

	"github.com/IT-Nick/quizbot/internal/domain/messages/repository"
)

// Ключи сообщений каталога
const (
	Welcome             = "welcome"
	RoleTeacher         = "role_teacher"
	RoleStudent         = "role_student"
	MainMenu            = "main_menu"
	EnterAdminCode      = "enter_admin_code"
	EnterAccessCode     = "enter_access_code"
	RegisteredTeacher   = "registered_teacher"
	JoinedClass         = "joined_class"
	AlreadyRegistered   = "already_registered"
	InvalidAdminCode    = "invalid_admin_code"
	InvalidAccessCode   = "invalid_access_code"
	NotRegistered       = "not_registered"
	TeacherOnly         = "teacher_only"
	StudentOnly         = "student_only"
	UnknownCommand      = "unknown_command"
	Cancelled           = "cancelled"
	GenericError        = "generic_error"
	EnterClassName      = "enter_class_name"
	ClassNameTooShort   = "class_name_too_short"
	ClassCreated        = "class_created"
	EnterTopic          = "enter_topic"
	EnterCount          = "enter_count"
	InvalidCount        = "invalid_count"
	EnterDifficulty     = "enter_difficulty"
	InvalidDifficulty   = "invalid_difficulty"
	GenerationStarted   = "generation_started"
	GenerationFailed    = "generation_failed"
	NoTestsCreated      = "no_tests_created"
	NoClasses           = "no_classes"
	SelectTestToAssign  = "select_test_to_assign"
	SelectClassToAssign = "select_class_to_assign"
	InvalidTestFormat   = "invalid_test_format"
	TestNotFound        = "test_not_found"
	InvalidClassFormat  = "invalid_class_format"
	ClassNotFound       = "class_not_found"
	TestAssigned        = "test_assigned"
	SelectClassResults  = "select_class_for_results"
	ClassHasNoStudents  = "class_has_no_students"
	NotInClass          = "not_in_class"
	NoAssignedTests     = "no_assigned_tests"
	SelectTestToTake    = "select_test_to_take"
	TestHasNoQuestions  = "test_has_no_questions"
	InvalidAnswer       = "invalid_answer"
	NoResults           = "no_results"
	HintsHeader         = "hints_header"
)

// MessageService содержит логику для работы с сообщениями
type MessageService struct {
	messageRepo *repository.MessageRepository
}

// NewMessageService создает новый экземпляр MessageService
func NewMessageService(messageRepo *repository.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// Text возвращает сообщение по ключу, подставляя аргументы.
// Отсутствующий ключ логируется и возвращается как есть, чтобы пользователь не остался без ответа.
func (s *MessageService) Text(key string, args ...any) string {
	text, err := s.messageRepo.GetMessageByKey(key)
	if err != nil {
		slog.Error("message lookup failed", "key", key, "error", err)
		return key
	}
	if len(args) == 0 {
		return text
	}
	return fmt.Sprintf(text, args...)
}
