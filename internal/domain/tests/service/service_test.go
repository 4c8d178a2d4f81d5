package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	docRepo "github.com/IT-Nick/quizbot/internal/domain/document/repository"
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// fakeGenerator возвращает заданное количество вопросов, но не больше запрошенного
type fakeGenerator struct {
	valid int
	err   error
}

func (g *fakeGenerator) Generate(_ context.Context, _ string, count int, _ model.Difficulty) ([]model.Question, error) {
	if g.err != nil {
		return nil, g.err
	}
	n := min(g.valid, count)
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			Text:         fmt.Sprintf("Вопрос номер %d", i+1),
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: i % 4,
		}
	}
	return questions, nil
}

func TestCreateTest_Threshold(t *testing.T) {
	tests := []struct {
		name      string
		valid     int
		requested int
		wantCount int
		wantErr   bool
	}{
		{"6 проверенных из 5 запрошенных", 6, 5, 5, false},
		{"20 запрошено, 5 проверенных", 5, 20, 5, false},
		{"3 запрошено, всегда отказ", 10, 3, 0, true},
		{"4 проверенных", 4, 10, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := docRepo.NewMemoryGateway()
			svc := NewTestService(gw, &fakeGenerator{valid: tt.valid}, 5)

			test, err := svc.CreateTest(context.Background(), "10", "Дроби", tt.requested, model.DifficultyEasy)
			if tt.wantErr {
				if !errors.Is(err, ErrTooFewQuestions) {
					t.Fatalf("Ожидалась ErrTooFewQuestions, получено %v", err)
				}
				doc, _ := gw.Load(context.Background())
				if len(doc.Tests) != 0 {
					t.Errorf("Тест не должен сохраняться при отказе")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateTest вернул ошибку: %v", err)
			}
			if len(test.Questions) != tt.wantCount {
				t.Errorf("Ожидалось %d вопросов, получено %d", tt.wantCount, len(test.Questions))
			}
			if test.ClassID != nil {
				t.Errorf("Новый тест не должен быть назначен классу")
			}
			if test.ID != "1" {
				t.Errorf("Ожидался id 1, получено %s", test.ID)
			}
		})
	}
}

func TestCreateTest_GeneratorFailure(t *testing.T) {
	svc := NewTestService(docRepo.NewMemoryGateway(), &fakeGenerator{err: errors.New("timeout")}, 5)
	if _, err := svc.CreateTest(context.Background(), "10", "Дроби", 5, model.DifficultyEasy); err == nil {
		t.Errorf("Ожидалась ошибка генерации")
	}
}

func TestAssignTest(t *testing.T) {
	gw := docRepo.NewMemoryGateway()
	doc := model.NewDocument()
	doc.Classes["1"] = &model.Class{ID: "1", Name: "7A", TeacherID: "10"}
	doc.Classes["2"] = &model.Class{ID: "2", Name: "8B", TeacherID: "11"}
	doc.Tests["1"] = &model.Test{ID: "1", Topic: "Дроби", TeacherID: "10"}
	ctx := context.Background()
	if err := gw.Save(ctx, doc); err != nil {
		t.Fatalf("Save вернул ошибку: %v", err)
	}
	svc := NewTestService(gw, &fakeGenerator{}, 5)

	if _, err := svc.AssignTest(ctx, "11", "1", "8B"); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("Чужой тест: ожидалась ErrForbidden, получено %v", err)
	}
	if _, err := svc.AssignTest(ctx, "10", "42", "7A"); !errors.Is(err, model.ErrTestNotFound) {
		t.Errorf("Несуществующий тест: ожидалась ErrTestNotFound, получено %v", err)
	}
	if _, err := svc.GetTeacherTest(ctx, "11", "1"); !errors.Is(err, model.ErrForbidden) {
		t.Errorf("GetTeacherTest чужого теста: ожидалась ErrForbidden, получено %v", err)
	}
	if _, err := svc.GetTeacherTest(ctx, "10", "42"); !errors.Is(err, model.ErrTestNotFound) {
		t.Errorf("GetTeacherTest несуществующего теста: ожидалась ErrTestNotFound, получено %v", err)
	}
	if _, err := svc.AssignTest(ctx, "10", "1", "8B"); !errors.Is(err, model.ErrClassNotFound) {
		t.Errorf("Чужой класс: ожидалась ErrClassNotFound, получено %v", err)
	}
	class, err := svc.AssignTest(ctx, "10", "1", "7A")
	if err != nil {
		t.Fatalf("AssignTest вернул ошибку: %v", err)
	}
	if class.ID != "1" {
		t.Errorf("Ожидался класс 1, получено %s", class.ID)
	}

	got, err := svc.GetClassTest(ctx, "1", "1")
	if err != nil {
		t.Fatalf("GetClassTest вернул ошибку: %v", err)
	}
	if got.ClassID == nil || *got.ClassID != "1" {
		t.Errorf("Тест должен быть назначен классу 1")
	}
	if _, err := svc.GetClassTest(ctx, "2", "1"); !errors.Is(err, model.ErrTestNotFound) {
		t.Errorf("Тест другого класса не должен находиться, получено %v", err)
	}
}
