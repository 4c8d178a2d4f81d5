package service

import (
	"context"
	"fmt"

	docRepo "github.com/IT-Nick/quizbot/internal/domain/document/repository"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/results/repository"
)

// ResultService сохраняет результаты прохождения тестов
type ResultService struct {
	gw docRepo.Gateway
}

// NewResultService создает новый экземпляр ResultService
func NewResultService(gw docRepo.Gateway) *ResultService {
	return &ResultService{gw: gw}
}

// SaveResult сохраняет результат попытки под новым последовательным id
func (s *ResultService) SaveResult(ctx context.Context, result *model.Result) (*model.Result, error) {
	var saved *model.Result
	err := docRepo.Update(ctx, s.gw, func(doc *model.Document) error {
		r := *result
		saved = repository.NewResultRepository(doc).CreateResult(&r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}
	return saved, nil
}

// GetStudentResults возвращает результаты ученика в порядке сохранения
func (s *ResultService) GetStudentResults(ctx context.Context, studentID string) ([]*model.Result, error) {
	doc, err := s.gw.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load results: %w", err)
	}
	return doc.ResultsByStudent(studentID), nil
}
