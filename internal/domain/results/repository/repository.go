package repository

import (
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// ResultRepository дает доступ к результатам внутри загруженного документа
type ResultRepository struct {
	doc *model.Document
}

// NewResultRepository создает новый экземпляр ResultRepository
func NewResultRepository(doc *model.Document) *ResultRepository {
	return &ResultRepository{doc: doc}
}

// CreateResult сохраняет результат под следующим id. Сохраненный результат больше не меняется.
func (r *ResultRepository) CreateResult(result *model.Result) *model.Result {
	result.ID = model.NextID(r.doc.Results)
	r.doc.Results[result.ID] = result
	return result
}
