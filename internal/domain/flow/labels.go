package flow

import (
	"strings"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

func testLabel(t *model.Test) string {
	return model.TestLabelPrefix + t.ID + model.TestLabelSeparator + t.Topic
}

func testLabels(tests []*model.Test) []string {
	labels := make([]string, 0, len(tests))
	for _, t := range tests {
		labels = append(labels, testLabel(t))
	}
	return labels
}

// parseTestLabel извлекает id теста из подписи "Тест ID: <id> - <тема>"
func parseTestLabel(label string) (string, bool) {
	rest, ok := strings.CutPrefix(label, model.TestLabelPrefix)
	if !ok {
		return "", false
	}
	id, _, _ := strings.Cut(rest, model.TestLabelSeparator)
	id = strings.TrimSpace(id)
	return id, id != ""
}

func classLabel(c *model.Class) string {
	return model.ClassLabelPrefix + c.Name
}

// parseClassLabel извлекает название класса из подписи "Класс: <название>"
func parseClassLabel(label string) (string, bool) {
	name, ok := strings.CutPrefix(label, model.ClassLabelPrefix)
	name = strings.TrimSpace(name)
	return name, ok && name != ""
}
