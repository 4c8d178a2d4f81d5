package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/IT-Nick/quizbot/internal/domain/dto"
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// MessageLimit - максимальный размер одного сообщения транспорта в символах
const MessageLimit = 4096

const unknownTopic = "Неизвестно"

// BuildClassReport собирает отчет по всем ученикам класса.
// В отчет попадают все участники класса, даже без результатов.
func BuildClassReport(doc *model.Document, class *model.Class) dto.ClassReportResponse {
	report := dto.ClassReportResponse{
		ClassID:   class.ID,
		ClassName: class.Name,
		Students:  make([]dto.StudentReport, 0, len(class.StudentIDs)),
	}
	for _, studentID := range class.StudentIDs {
		report.Students = append(report.Students, dto.StudentReport{
			StudentID:   studentID,
			StudentName: studentName(doc, studentID),
			Results:     buildResults(doc, studentID),
		})
	}
	return report
}

// BuildStudentResults собирает историю результатов ученика
func BuildStudentResults(doc *model.Document, student *model.User) dto.StudentResultsResponse {
	return dto.StudentResultsResponse{
		StudentID:   student.ID,
		StudentName: student.DisplayName,
		ClassID:     student.ClassID,
		Results:     buildResults(doc, student.ID),
	}
}

func buildResults(doc *model.Document, studentID string) []dto.TestResult {
	results := make([]dto.TestResult, 0)
	for _, r := range doc.ResultsByStudent(studentID) {
		topic := unknownTopic
		if t, ok := doc.Tests[r.TestID]; ok {
			topic = t.Topic
		}
		mistakes := make([]dto.MistakeInfo, 0, len(r.WrongAnswers))
		for _, w := range r.WrongAnswers {
			mistakes = append(mistakes, dto.MistakeInfo{
				Question:      w.Question,
				UserAnswer:    w.UserAnswer,
				CorrectAnswer: w.CorrectAnswer,
			})
		}
		results = append(results, dto.TestResult{
			ResultID:  r.ID,
			TestID:    r.TestID,
			TestTopic: topic,
			Correct:   r.CorrectCount,
			Total:     r.TotalCount,
			Mistakes:  mistakes,
		})
	}
	return results
}

func studentName(doc *model.Document, studentID string) string {
	if u, ok := doc.Users[studentID]; ok && u.DisplayName != "" {
		return u.DisplayName
	}
	for _, r := range doc.ResultsByStudent(studentID) {
		if r.StudentName != "" {
			return r.StudentName
		}
	}
	return studentID
}

// FormatClassReport отображает отчет учителя по классу
func FormatClassReport(r dto.ClassReportResponse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 Результаты класса '%s':\n", r.ClassName))
	for _, s := range r.Students {
		sb.WriteString(fmt.Sprintf("\n👤 %s:\n", s.StudentName))
		if len(s.Results) == 0 {
			sb.WriteString("Нет результатов\n")
			continue
		}
		for _, res := range s.Results {
			writeResult(&sb, res)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatStudentResults отображает историю результатов ученика без группировки по классам
func FormatStudentResults(r dto.StudentResultsResponse) string {
	var sb strings.Builder
	sb.WriteString("Ваши результаты:\n")
	for _, res := range r.Results {
		writeResult(&sb, res)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writeResult(sb *strings.Builder, res dto.TestResult) {
	sb.WriteString(fmt.Sprintf("\n📝 Тест: %s (ID: %s)\n", res.TestTopic, res.TestID))
	sb.WriteString(fmt.Sprintf("✅ Правильно: %d/%d\n", res.Correct, res.Total))
	if len(res.Mistakes) == 0 {
		return
	}
	sb.WriteString("❌ Ошибки:\n")
	writeMistakes(sb, res.Mistakes)
}

func writeMistakes(sb *strings.Builder, mistakes []dto.MistakeInfo) {
	for i, m := range mistakes {
		sb.WriteString(fmt.Sprintf("%d. Вопрос: %s\n   Ваш ответ: %s\n   Правильный ответ: %s\n",
			i+1, m.Question, m.UserAnswer, m.CorrectAnswer))
	}
}

// FormatAttemptSummary отображает итог только что завершенной попытки
func FormatAttemptSummary(res *model.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Тест завершен!\nПравильных ответов: %d/%d", res.CorrectCount, res.TotalCount))
	if len(res.WrongAnswers) > 0 {
		sb.WriteString("\n\nОшибки:\n")
		mistakes := make([]dto.MistakeInfo, 0, len(res.WrongAnswers))
		for _, w := range res.WrongAnswers {
			mistakes = append(mistakes, dto.MistakeInfo{Question: w.Question, UserAnswer: w.UserAnswer, CorrectAnswer: w.CorrectAnswer})
		}
		writeMistakes(&sb, mistakes)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatTeacherTests отображает список тестов учителя
func FormatTeacherTests(doc *model.Document, tests []*model.Test) string {
	var sb strings.Builder
	sb.WriteString("📚 Список ваших тестов:\n")
	for _, t := range tests {
		className := "Не назначен"
		if t.ClassID != nil {
			if c, ok := doc.Classes[*t.ClassID]; ok {
				className = c.Name
			}
		}
		sb.WriteString(fmt.Sprintf("\n🔹 ID: %s\nТема: %s\nСложность: %s\nВопросов: %d\nКласс: %s\n--------------------------",
			t.ID, t.Topic, t.Difficulty.Label(), len(t.Questions), className))
	}
	return sb.String()
}

// FormatQuestion отображает вопрос с пронумерованными вариантами
func FormatQuestion(q model.Question, number int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Вопрос %d:\n%s\n", number, q.Text))
	for i, o := range q.Options {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, o))
	}
	return sb.String()
}

// FormatCreatedTest отображает сообщение об успешном создании теста
func FormatCreatedTest(t *model.Test) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ Тест успешно создан!\nID: %s\nВопросы:", t.ID))
	for i, q := range t.Questions {
		sb.WriteString(fmt.Sprintf("\n%d. %s", i+1, q.Text))
	}
	return sb.String()
}

// Paginate делит текст на части не длиннее limit символов, сохраняя порядок.
// Пустой текст дает пустой список.
func Paginate(text string, limit int) []string {
	if limit <= 0 {
		limit = MessageLimit
	}
	var parts []string
	for len(text) > 0 {
		if utf8.RuneCountInString(text) <= limit {
			parts = append(parts, text)
			break
		}
		cut := 0
		for i := 0; i < limit; i++ {
			_, size := utf8.DecodeRuneInString(text[cut:])
			cut += size
		}
		parts = append(parts, text[:cut])
		text = text[cut:]
	}
	return parts
}
