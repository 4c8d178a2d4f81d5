package report

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

func newReportDocument() *model.Document {
	doc := model.NewDocument()
	doc.Users["10"] = &model.User{ID: "10", Role: model.RoleTeacher, DisplayName: "Учитель"}
	doc.Users["20"] = &model.User{ID: "20", Role: model.RoleStudent, DisplayName: "Аня", ClassID: "1"}
	doc.Users["30"] = &model.User{ID: "30", Role: model.RoleStudent, DisplayName: "Боря", ClassID: "1"}
	doc.Classes["1"] = &model.Class{ID: "1", Name: "7A", TeacherID: "10", AccessCode: "ABC123", StudentIDs: []string{"20", "30"}}
	classID := "1"
	doc.Tests["1"] = &model.Test{ID: "1", Topic: "Дроби", Difficulty: model.DifficultyEasy, TeacherID: "10", ClassID: &classID}
	doc.Results["1"] = &model.Result{
		ID: "1", StudentID: "20", StudentName: "Аня", TestID: "1", TeacherID: "10",
		CorrectCount: 1, TotalCount: 2,
		WrongAnswers: []model.WrongAnswer{{Question: "1/2 + 1/2?", UserAnswer: "2", CorrectAnswer: "1", CorrectIndex: 0}},
	}
	return doc
}

// TestClassReport_IncludesStudentsWithoutResults проверяет, что ученики без попыток попадают в отчет.
func TestClassReport_IncludesStudentsWithoutResults(t *testing.T) {
	doc := newReportDocument()
	r := BuildClassReport(doc, doc.Classes["1"])

	if len(r.Students) != 2 {
		t.Fatalf("Ожидалось 2 ученика в отчете, получено %d", len(r.Students))
	}
	if len(r.Students[1].Results) != 0 {
		t.Errorf("У второго ученика не должно быть результатов, получено %d", len(r.Students[1].Results))
	}

	text := FormatClassReport(r)
	for _, want := range []string{"7A", "Аня", "Боря", "Нет результатов", "Дроби", "1/2", "1. Вопрос: 1/2 + 1/2?"} {
		if !strings.Contains(text, want) {
			t.Errorf("Отчет не содержит %q:\n%s", want, text)
		}
	}
}

// TestClassReport_UnknownTopic проверяет отчет по результату удаленного теста.
func TestClassReport_UnknownTopic(t *testing.T) {
	doc := newReportDocument()
	delete(doc.Tests, "1")

	r := BuildClassReport(doc, doc.Classes["1"])
	if got := r.Students[0].Results[0].TestTopic; got != unknownTopic {
		t.Errorf("Ожидалась тема %q, получено %q", unknownTopic, got)
	}
}

// TestStudentResults проверяет историю ученика без ошибок.
func TestStudentResults(t *testing.T) {
	doc := newReportDocument()
	doc.Results["2"] = &model.Result{ID: "2", StudentID: "20", TestID: "1", CorrectCount: 2, TotalCount: 2, WrongAnswers: []model.WrongAnswer{}}

	r := BuildStudentResults(doc, doc.Users["20"])
	if len(r.Results) != 2 {
		t.Fatalf("Ожидалось 2 результата, получено %d", len(r.Results))
	}
	text := FormatStudentResults(r)
	if strings.Count(text, "❌ Ошибки:") != 1 {
		t.Errorf("Блок ошибок должен выводиться только для попытки с ошибками:\n%s", text)
	}
	if !strings.Contains(text, "2/2") {
		t.Errorf("Отчет не содержит счет 2/2:\n%s", text)
	}
}

// TestFormatTeacherTests проверяет отображение неназначенного теста.
func TestFormatTeacherTests(t *testing.T) {
	doc := newReportDocument()
	doc.Tests["2"] = &model.Test{ID: "2", Topic: "Степени", Difficulty: model.DifficultyHard, TeacherID: "10"}

	text := FormatTeacherTests(doc, doc.TestsByTeacher("10"))
	if !strings.Contains(text, "Не назначен") || !strings.Contains(text, "Класс: 7A") {
		t.Errorf("Неверный список тестов:\n%s", text)
	}
	if !strings.Contains(text, "сложный") {
		t.Errorf("Сложность должна выводиться по-русски:\n%s", text)
	}
}

// TestPaginate проверяет деление по символам, а не по байтам.
func TestPaginate(t *testing.T) {
	text := strings.Repeat("я", 10)
	parts := Paginate(text, 4)
	if len(parts) != 3 {
		t.Fatalf("Ожидалось 3 части, получено %d", len(parts))
	}
	for i, p := range parts {
		if !utf8.ValidString(p) {
			t.Errorf("Часть %d содержит разорванный символ", i)
		}
		if utf8.RuneCountInString(p) > 4 {
			t.Errorf("Часть %d длиннее лимита: %d", i, utf8.RuneCountInString(p))
		}
	}
	if strings.Join(parts, "") != text {
		t.Errorf("Склеенные части не совпадают с исходным текстом")
	}

	if got := Paginate("", 4); len(got) != 0 {
		t.Errorf("Пустой текст должен давать пустой список, получено %d частей", len(got))
	}
	if got := Paginate("abc", 0); len(got) != 1 {
		t.Errorf("При нулевом лимите используется лимит по умолчанию, получено %d частей", len(got))
	}
}
