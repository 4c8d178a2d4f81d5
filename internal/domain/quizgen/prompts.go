package quizgen

import (
	"fmt"
	"strings"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

const testSystemPrompt = "Ты - опытный преподаватель и эксперт в создании учебных тестов. " +
	"Твоя задача - создавать тесты по любой указанной теме."

const hintSystemPrompt = "Ты — опытный преподаватель, помогаешь ученикам понять их ошибки"

func buildTestPrompt(topic string, count int, difficulty model.Difficulty) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Сгенерируй тест по теме %q.\n", topic))
	sb.WriteString(fmt.Sprintf("Количество вопросов: %d. Уровень сложности: %s.\n", count, difficulty.Label()))
	sb.WriteString("Формат ответа: строго JSON с полем \"questions\" (список вопросов).\n")
	sb.WriteString("Каждый вопрос должен содержать:\n")
	sb.WriteString("- \"question\" (текст вопроса)\n")
	sb.WriteString("- \"options\" (список из 4 строк)\n")
	sb.WriteString("- \"correct\" (индекс правильного ответа: 0-3)\n")
	sb.WriteString("- \"explanation\" (краткое объяснение, почему этот ответ правильный)\n")
	return sb.String()
}

func buildHintPrompt(question, wrongAnswer string) string {
	var sb strings.Builder
	sb.WriteString("Сгенерируй пояснение для ученика, который ошибся в ответе на вопрос.\n")
	sb.WriteString("Не называй правильный ответ напрямую. Используй подсказки.\n\n")
	sb.WriteString("Вопрос: " + question + "\n")
	sb.WriteString("Ошибочный ответ ученика: " + wrongAnswer + "\n\n")
	sb.WriteString("Формат:\n")
	sb.WriteString("- Начни с позитивного подкрепления\n")
	sb.WriteString("- Укажи на область ошибки\n")
	sb.WriteString("- Предложи направление для размышлений\n")
	return sb.String()
}
