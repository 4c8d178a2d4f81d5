package quizgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// minQuestionLength - минимальная длина текста вопроса в символах
const minQuestionLength = 5

// ExtractJSON выделяет из ответа сервиса JSON-объект: от первой '{' до последней '}'.
// Если скобок нет, возвращается весь текст.
func ExtractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}

// Sanitize разбирает JSON с полем questions и оставляет только корректные вопросы,
// не более limit штук. Ошибка означает, что JSON разобрать не удалось.
func Sanitize(raw string, limit int) ([]model.Question, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse questions JSON: %w", err)
	}
	// после объекта допускаются только пробелы
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse questions JSON: unexpected data after object at offset %d", dec.InputOffset())
	}

	candidates, _ := payload["questions"].([]any)

	validated := make([]model.Question, 0, len(candidates))
	for _, c := range candidates {
		fields, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if q, ok := validateQuestion(lowerKeys(fields)); ok {
			validated = append(validated, q)
		}
	}

	if limit >= 0 && len(validated) > limit {
		validated = validated[:limit]
	}
	return validated, nil
}

func lowerKeys(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[strings.ToLower(k)] = v
	}
	return out
}

// validateQuestion проверяет один кандидат. Правильный вариант не должен совпадать ни с одним другим.
func validateQuestion(fields map[string]any) (model.Question, bool) {
	text, ok := fields["question"].(string)
	if !ok || utf8.RuneCountInString(text) < minQuestionLength {
		return model.Question{}, false
	}

	rawOptions, ok := fields["options"].([]any)
	if !ok || len(rawOptions) != model.OptionsPerQuestion {
		return model.Question{}, false
	}
	options := make([]string, 0, len(rawOptions))
	for _, o := range rawOptions {
		s, ok := o.(string)
		if !ok {
			return model.Question{}, false
		}
		options = append(options, s)
	}

	number, ok := fields["correct"].(json.Number)
	if !ok {
		return model.Question{}, false
	}
	correct, err := number.Int64()
	if err != nil || correct < 0 || correct > model.OptionsPerQuestion-1 {
		return model.Question{}, false
	}

	if !allDistinct(options) {
		return model.Question{}, false
	}
	// повторная проверка однозначности правильного ответа
	for i, o := range options {
		if i != int(correct) && o == options[correct] {
			return model.Question{}, false
		}
	}

	explanation, _ := fields["explanation"].(string)
	return model.Question{
		Text:         text,
		Options:      options,
		CorrectIndex: int(correct),
		Explanation:  explanation,
	}, true
}

func allDistinct(options []string) bool {
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if _, ok := seen[o]; ok {
			return false
		}
		seen[o] = struct{}{}
	}
	return true
}
