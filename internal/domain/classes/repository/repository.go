package repository

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

const (
	accessCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// AccessCodeLength - длина кода доступа к классу
	AccessCodeLength = 6
	// maxCodeAttempts - сколько раз перегенерируется код при совпадении с существующим
	maxCodeAttempts = 10
)

// CodeGenerator выдает новый код доступа
type CodeGenerator func() (string, error)

// RandomAccessCode генерирует код из заглавных латинских букв и цифр
func RandomAccessCode() (string, error) {
	code := make([]byte, AccessCodeLength)
	limit := big.NewInt(int64(len(accessCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate access code: %w", err)
		}
		code[i] = accessCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// ClassRepository дает доступ к классам внутри загруженного документа
type ClassRepository struct {
	doc     *model.Document
	newCode CodeGenerator
}

// NewClassRepository создает новый экземпляр ClassRepository
func NewClassRepository(doc *model.Document, newCode CodeGenerator) *ClassRepository {
	if newCode == nil {
		newCode = RandomAccessCode
	}
	return &ClassRepository{doc: doc, newCode: newCode}
}

// GetClassByID возвращает класс или nil
func (r *ClassRepository) GetClassByID(id string) *model.Class {
	return r.doc.Classes[id]
}

// GetClassByAccessCode ищет класс по точному совпадению кода
func (r *ClassRepository) GetClassByAccessCode(code string) *model.Class {
	for _, id := range model.SortedIDs(r.doc.Classes) {
		if c := r.doc.Classes[id]; c.AccessCode == code {
			return c
		}
	}
	return nil
}

// GetTeacherClassByName ищет класс учителя по названию
func (r *ClassRepository) GetTeacherClassByName(teacherID, name string) *model.Class {
	for _, c := range r.doc.ClassesByTeacher(teacherID) {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// CreateClass создает класс со следующим id и уникальным кодом доступа
func (r *ClassRepository) CreateClass(teacherID, name string) (*model.Class, error) {
	code, err := r.uniqueCode()
	if err != nil {
		return nil, err
	}
	class := &model.Class{
		ID:         model.NextID(r.doc.Classes),
		Name:       name,
		TeacherID:  teacherID,
		AccessCode: code,
		StudentIDs: []string{},
	}
	r.doc.Classes[class.ID] = class
	return class, nil
}

func (r *ClassRepository) uniqueCode() (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := r.newCode()
		if err != nil {
			return "", err
		}
		if r.GetClassByAccessCode(code) == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique access code after %d attempts", maxCodeAttempts)
}

// AddStudent добавляет ученика в конец списка класса. Повторное добавление ничего не меняет.
func (r *ClassRepository) AddStudent(class *model.Class, studentID string) bool {
	if class.HasStudent(studentID) {
		return false
	}
	class.StudentIDs = append(class.StudentIDs, studentID)
	return true
}
