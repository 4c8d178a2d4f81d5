package model

import (
	"sort"
	"strconv"
)

// Document - единственный хранимый документ с четырьмя коллекциями.
// Version используется для оптимистической блокировки при сохранении.
type Document struct {
	Version int64              `json:"version"`
	Users   map[string]*User   `json:"users"`
	Classes map[string]*Class  `json:"classes"`
	Tests   map[string]*Test   `json:"tests"`
	Results map[string]*Result `json:"results"`
}

// NewDocument возвращает пустой документ с инициализированными коллекциями
func NewDocument() *Document {
	return &Document{
		Users:   make(map[string]*User),
		Classes: make(map[string]*Class),
		Tests:   make(map[string]*Test),
		Results: make(map[string]*Result),
	}
}

// Normalize заполняет отсутствующие коллекции, например после чтения старого файла без results
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = make(map[string]*User)
	}
	if d.Classes == nil {
		d.Classes = make(map[string]*Class)
	}
	if d.Tests == nil {
		d.Tests = make(map[string]*Test)
	}
	if d.Results == nil {
		d.Results = make(map[string]*Result)
	}
}

// NextID возвращает следующий последовательный идентификатор для коллекции с указанными ключами
func NextID[T any](collection map[string]T) string {
	last := 0
	for id := range collection {
		if n, err := strconv.Atoi(id); err == nil && n > last {
			last = n
		}
	}
	if len(collection) > last {
		last = len(collection)
	}
	return strconv.Itoa(last + 1)
}

// SortedIDs возвращает ключи коллекции в порядке создания (числовые id по возрастанию)
func SortedIDs[T any](collection map[string]T) []string {
	ids := make([]string, 0, len(collection))
	for id := range collection {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return ids[i] < ids[j]
	})
	return ids
}

// ClassesByTeacher возвращает классы учителя в порядке создания
func (d *Document) ClassesByTeacher(teacherID string) []*Class {
	var classes []*Class
	for _, id := range SortedIDs(d.Classes) {
		if c := d.Classes[id]; c.TeacherID == teacherID {
			classes = append(classes, c)
		}
	}
	return classes
}

// TestsByTeacher возвращает тесты учителя в порядке создания
func (d *Document) TestsByTeacher(teacherID string) []*Test {
	var tests []*Test
	for _, id := range SortedIDs(d.Tests) {
		if t := d.Tests[id]; t.TeacherID == teacherID {
			tests = append(tests, t)
		}
	}
	return tests
}

// TestsByClass возвращает тесты, назначенные классу
func (d *Document) TestsByClass(classID string) []*Test {
	var tests []*Test
	for _, id := range SortedIDs(d.Tests) {
		if t := d.Tests[id]; t.IsAssignedTo(classID) {
			tests = append(tests, t)
		}
	}
	return tests
}

// ResultsByStudent возвращает результаты ученика в порядке сохранения
func (d *Document) ResultsByStudent(studentID string) []*Result {
	var results []*Result
	for _, id := range SortedIDs(d.Results) {
		if r := d.Results[id]; r.StudentID == studentID {
			results = append(results, r)
		}
	}
	return results
}
