package model

// Тексты кнопок главного меню. Они же являются командами, которые распознает бот.
// Не следует менять тексты без учета уже отправленных пользователям клавиатур.
const (
	ButtonCreateClass  = "Создать класс"
	ButtonCreateTest   = "Создать тест"
	ButtonViewTests    = "Просмотреть тесты"
	ButtonAssignTest   = "Назначить тест"
	ButtonViewResults  = "Просмотреть результаты"
	ButtonMyTests      = "Мои тесты"
	ButtonMyResults    = "Мои результаты"
	ButtonCancel       = "❌ Отмена"
	CommandStart       = "/start"
	CommandCancel      = "/cancel"
	SelectRoleTeacher  = "register_teacher"
	SelectRoleStudent  = "register_student"
	TestLabelPrefix    = "Тест ID: "
	TestLabelSeparator = " - "
	ClassLabelPrefix   = "Класс: "
)
