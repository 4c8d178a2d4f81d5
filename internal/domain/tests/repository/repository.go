package repository

import (
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// TestRepository дает доступ к тестам внутри загруженного документа
type TestRepository struct {
	doc *model.Document
}

// NewTestRepository создает новый экземпляр TestRepository
func NewTestRepository(doc *model.Document) *TestRepository {
	return &TestRepository{doc: doc}
}

// GetTestByID возвращает тест или nil
func (r *TestRepository) GetTestByID(id string) *model.Test {
	return r.doc.Tests[id]
}

// CreateTest сохраняет новый неназначенный тест со следующим id
func (r *TestRepository) CreateTest(teacherID, topic string, difficulty model.Difficulty, questions []model.Question) *model.Test {
	test := &model.Test{
		ID:         model.NextID(r.doc.Tests),
		Topic:      topic,
		Difficulty: difficulty,
		Questions:  questions,
		TeacherID:  teacherID,
	}
	r.doc.Tests[test.ID] = test
	return test
}

// AssignTestToClass назначает тест классу, заменяя прежнее назначение
func (r *TestRepository) AssignTestToClass(test *model.Test, classID string) {
	id := classID
	test.ClassID = &id
}
