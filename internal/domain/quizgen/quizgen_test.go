package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

type fakeCompleter struct {
	text   string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	f.prompt = prompt
	return f.text, f.err
}

func validQuestionJSON(i int) string {
	return fmt.Sprintf(`{"question": "Вопрос номер %d?", "options": ["a%d", "b%d", "c%d", "d%d"], "correct": %d, "explanation": "потому что"}`,
		i, i, i, i, i, i%4)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"wrapped in prose", "Вот ваш тест:\n```json\n{\"a\": {\"b\": 1}}\n```\nУдачи!", `{"a": {"b": 1}}`},
		{"no braces", "no json here", "no json here"},
		{"reversed braces", "} oops {", "} oops {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.in); got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitize_DiscardsInvalidCandidates(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
	}{
		{"short question", `{"question": "Что?", "options": ["a", "b", "c", "d"], "correct": 0}`},
		{"three options", `{"question": "Длинный вопрос", "options": ["a", "b", "c"], "correct": 0}`},
		{"five options", `{"question": "Длинный вопрос", "options": ["a", "b", "c", "d", "e"], "correct": 0}`},
		{"duplicate options", `{"question": "Длинный вопрос", "options": ["a", "a", "c", "d"], "correct": 2}`},
		{"correct out of range", `{"question": "Длинный вопрос", "options": ["a", "b", "c", "d"], "correct": 4}`},
		{"negative correct", `{"question": "Длинный вопрос", "options": ["a", "b", "c", "d"], "correct": -1}`},
		{"fractional correct", `{"question": "Длинный вопрос", "options": ["a", "b", "c", "d"], "correct": 1.5}`},
		{"string correct", `{"question": "Длинный вопрос", "options": ["a", "b", "c", "d"], "correct": "1"}`},
		{"boolean correct", `{"question": "Длинный вопрос", "options": ["a", "b", "c", "d"], "correct": true}`},
		{"missing options", `{"question": "Длинный вопрос", "correct": 1}`},
		{"non string option", `{"question": "Длинный вопрос", "options": ["a", 2, "c", "d"], "correct": 1}`},
		{"not an object", `"Длинный вопрос"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(`{"questions": [`+tt.candidate+`]}`, 10)
			if err != nil {
				t.Fatalf("Sanitize: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("candidate should be discarded, got %+v", got)
			}
		})
	}
}

func TestSanitize_NormalizesKeys(t *testing.T) {
	raw := `{"questions": [{"Question": "Столица Франции?", "OPTIONS": ["Париж", "Лион", "Ницца", "Марсель"], "Correct": 0}]}`
	got, err := Sanitize(raw, 5)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 question, got %d", len(got))
	}
	if got[0].CorrectOption() != "Париж" {
		t.Errorf("correct option = %q, want Париж", got[0].CorrectOption())
	}
	if got[0].Explanation != "" {
		t.Errorf("missing explanation should be empty, got %q", got[0].Explanation)
	}
}

func TestSanitize_EveryAcceptedQuestionIsWellFormed(t *testing.T) {
	var parts []string
	for i := 0; i < 12; i++ {
		parts = append(parts, validQuestionJSON(i))
	}
	parts = append(parts, `{"question": "Плохой вопрос", "options": ["x", "x", "y", "z"], "correct": 0}`)

	got, err := Sanitize(`{"questions": [`+strings.Join(parts, ",")+`]}`, 20)
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if len(got) != 12 {
		t.Fatalf("expected 12 questions, got %d", len(got))
	}
	for _, q := range got {
		if len(q.Options) != model.OptionsPerQuestion {
			t.Errorf("question %q has %d options", q.Text, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
			t.Errorf("question %q has correct index %d", q.Text, q.CorrectIndex)
		}
		if !allDistinct(q.Options) {
			t.Errorf("question %q has duplicate options", q.Text)
		}
	}
}

func TestSanitize_MalformedJSON(t *testing.T) {
	for _, raw := range []string{
		"{not json",
		`["questions"]`,
		"",
		`{"questions":[]} {"questions":[]}`,
		`{"questions":[]} trailing`,
		`{"questions":[]}}`,
	} {
		if _, err := Sanitize(raw, 5); err == nil {
			t.Errorf("Sanitize(%q) should fail", raw)
		}
	}
	if _, err := Sanitize("  {\"questions\":[]}\n\t ", 5); err != nil {
		t.Errorf("surrounding whitespace must be accepted, got %v", err)
	}
}

func TestGenerate_TextAfterObjectIsNoResult(t *testing.T) {
	var parts []string
	for i := 0; i < 5; i++ {
		parts = append(parts, validQuestionJSON(i))
	}
	answer := "Вот тест: {\"questions\":[" + strings.Join(parts, ",") + "]} Примечание: {формат}"
	gen := NewGenerator(&fakeCompleter{text: answer}, time.Second)

	if _, err := gen.Generate(context.Background(), "Дроби", 5, model.DifficultyEasy); !errors.Is(err, ErrNoResult) {
		t.Errorf("expected ErrNoResult for two JSON groups, got %v", err)
	}
}

func TestGenerate_TruncatesToRequestedCount(t *testing.T) {
	var parts []string
	for i := 0; i < 6; i++ {
		parts = append(parts, validQuestionJSON(i))
	}
	parts = append(parts,
		`{"question": "Нет", "options": ["a", "b", "c", "d"], "correct": 0}`,
		`{"question": "Длинный вопрос", "options": ["a", "b"], "correct": 0}`,
	)
	llm := &fakeCompleter{text: "Конечно! " + `{"questions": [` + strings.Join(parts, ",") + `]}` + " Готово."}

	g := NewGenerator(llm, time.Second)
	got, err := g.Generate(context.Background(), "Дроби", 5, model.DifficultyEasy)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("expected min(6, 5) = 5 questions, got %d", len(got))
	}
	if !strings.Contains(llm.prompt, "Дроби") || !strings.Contains(llm.prompt, "легкий") {
		t.Errorf("prompt should mention topic and difficulty: %q", llm.prompt)
	}
}

func TestGenerate_NoResult(t *testing.T) {
	tests := []struct {
		name string
		llm  *fakeCompleter
	}{
		{"call failure", &fakeCompleter{err: errors.New("connection refused")}},
		{"malformed JSON", &fakeCompleter{text: "{questions: oops}"}},
		{"no valid questions", &fakeCompleter{text: `{"questions": []}`}},
		{"no questions field", &fakeCompleter{text: `{"items": [1, 2]}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(tt.llm, time.Second).Generate(context.Background(), "topic", 5, model.DifficultyHard)
			if !errors.Is(err, ErrNoResult) {
				t.Errorf("expected ErrNoResult, got %v", err)
			}
		})
	}
}

func TestHint(t *testing.T) {
	llm := &fakeCompleter{text: "  Хорошая попытка! Подумай о знаменателе.  "}
	hint, err := NewGenerator(llm, time.Second).Hint(context.Background(), "1/2 + 1/4?", "2/6")
	if err != nil {
		t.Fatalf("Hint: %v", err)
	}
	if hint != "Хорошая попытка! Подумай о знаменателе." {
		t.Errorf("unexpected hint %q", hint)
	}
	if !strings.Contains(llm.prompt, "2/6") {
		t.Error("hint prompt should include the wrong answer")
	}

	_, err = NewGenerator(&fakeCompleter{text: "   "}, time.Second).Hint(context.Background(), "q", "a")
	if !errors.Is(err, ErrNoResult) {
		t.Errorf("empty hint should be ErrNoResult, got %v", err)
	}
}
