package repository

import (
	"fmt"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// UserRepository дает доступ к пользователям внутри загруженного документа.
// Живет в пределах одной операции document/repository.Update.
type UserRepository struct {
	doc *model.Document
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(doc *model.Document) *UserRepository {
	return &UserRepository{doc: doc}
}

// GetUserByID возвращает пользователя или nil, если его нет
func (r *UserRepository) GetUserByID(id string) *model.User {
	return r.doc.Users[id]
}

// CreateUser добавляет пользователя. Роль после создания не меняется.
func (r *UserRepository) CreateUser(user *model.User) error {
	if _, ok := r.doc.Users[user.ID]; ok {
		return fmt.Errorf("user %s: %w", user.ID, model.ErrAlreadyRegistered)
	}
	if !user.Role.Valid() {
		return fmt.Errorf("role %q: %w", user.Role, model.ErrInvalidInput)
	}
	r.doc.Users[user.ID] = user
	return nil
}
